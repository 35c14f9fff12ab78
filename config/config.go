package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string `envconfig:"BOT_TOKEN" required:"true"`
	GuildID      string `envconfig:"GUILD_ID" default:""` // test guild; empty registers commands globally
	DBPath       string `envconfig:"DB_PATH" default:"purrislav.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	AnnounceCron string `envconfig:"ANNOUNCE_CRON" default:"0 * * * *"`
}

// Load reads environment variables into Config. A .env file is picked up
// when present but is not required.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

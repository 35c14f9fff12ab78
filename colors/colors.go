// Package colors parses and validates hex color codes for role colors.
package colors

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when the input is not a #RGB or #RRGGBB code.
var ErrInvalidHex = errors.New("invalid hex color code")

var hexPattern = regexp.MustCompile(`^([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Parse converts a "#RRGGBB" or "#RGB" code (leading '#' optional) into
// its red, green and blue components.
func Parse(code string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(code, "#")

	if !hexPattern.MatchString(hex) {
		return 0, 0, 0, ErrInvalidHex
	}

	if len(hex) == 3 {
		var expanded strings.Builder
		for _, c := range hex {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		hex = expanded.String()
	}

	channels := make([]uint8, 3)
	for i := range channels {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, ErrInvalidHex
		}
		channels[i] = uint8(v)
	}

	return channels[0], channels[1], channels[2], nil
}

// Decimal packs the components into the integer form discord expects.
func Decimal(r, g, b uint8) int {
	return int(r)<<16 | int(g)<<8 | int(b)
}

// Normalize returns the canonical lowercase "rrggbb" form of the components.
func Normalize(r, g, b uint8) string {
	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}

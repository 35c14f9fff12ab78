package colors

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		code    string
		r, g, b uint8
	}{
		{"#ff7700", 255, 119, 0},
		{"ff7700", 255, 119, 0},
		{"#f70", 255, 119, 0},
		{"#FFF", 255, 255, 255},
		{"000000", 0, 0, 0},
		{"#1A2b3C", 26, 43, 60},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			r, g, b, err := Parse(tc.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != tc.r || g != tc.g || b != tc.b {
				t.Fatalf("want (%d, %d, %d), got (%d, %d, %d)",
					tc.r, tc.g, tc.b, r, g, b)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, code := range []string{
		"", "#", "#ff770", "#ff77000", "zzzzzz", "##ff7700", "#f7", "12345",
	} {
		t.Run(code, func(t *testing.T) {
			if _, _, _, err := Parse(code); !errors.Is(err, ErrInvalidHex) {
				t.Fatalf("want ErrInvalidHex, got %v", err)
			}
		})
	}
}

func TestDecimal(t *testing.T) {
	if got := Decimal(255, 119, 0); got != 0xff7700 {
		t.Fatalf("want %d, got %d", 0xff7700, got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(255, 119, 0); got != "ff7700" {
		t.Fatalf("got %q", got)
	}
	if got := Normalize(0, 1, 2); got != "000102" {
		t.Fatalf("got %q", got)
	}
}

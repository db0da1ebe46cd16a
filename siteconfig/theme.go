package siteconfig

import (
	"strconv"
	"strings"

	"github.com/jrsteele09/go-member-client/internal/errors"
)

// DefaultAccent is the accent colour before any configuration is applied
const DefaultAccent = "#1989fa"

type StatusBarStyle string

const (
	StatusBarNone  StatusBarStyle = ""
	StatusBarLight StatusBarStyle = "default"
	StatusBarDark  StatusBarStyle = "black-translucent"
)

// lightThreshold is the lowest luma considered a light colour
const lightThreshold = 128

// Theme is the visual state derived from the configured accent colour.
type Theme struct {
	Accent    string
	StatusBar StatusBarStyle
}

func defaultTheme() Theme {
	return Theme{Accent: DefaultAccent, StatusBar: StatusBarNone}
}

// ThemeFor derives a theme from a #rrggbb or #rgb colour.
func ThemeFor(color string) (Theme, error) {
	r, g, b, err := parseHexColour(color)
	if err != nil {
		return Theme{}, err
	}
	style := StatusBarDark
	if Luma(r, g, b) >= lightThreshold {
		style = StatusBarLight
	}
	return Theme{Accent: color, StatusBar: style}, nil
}

// Luma is the perceived brightness (299R + 587G + 114B) / 1000 in 0..255.
func Luma(r, g, b uint8) float64 {
	return (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
}

func parseHexColour(color string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, errors.Wrapf(errors.ErrInvalidColour, "%q", color)
	}

	v, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		return 0, 0, 0, errors.Wrapf(errors.ErrInvalidColour, "%q", color)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

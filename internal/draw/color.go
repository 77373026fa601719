package draw

import "strconv"

// ANSI text attributes for UI overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorDim         = "\033[2m"
	ColorRed         = "\033[31m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightGreen = "\033[92m"
	ColorBrightRed   = "\033[91m"
	ColorMagenta     = "\033[95m"
)

// Ink is a canvas pixel color. InkNone is an unset pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkCookie
	InkChip
	InkHazard
	InkHazardCore
	InkMagnet
	InkLife
	InkPlayer
	InkPlayerGlow
	InkSpark
	InkGround
)

// xterm-256 palette index per ink.
var inkPalette = [...]uint8{
	InkNone:       0,
	InkWhite:      15,
	InkCookie:     179,
	InkChip:       94,
	InkHazard:     196,
	InkHazardCore: 88,
	InkMagnet:     33,
	InkLife:       205,
	InkPlayer:     51,
	InkPlayerGlow: 45,
	InkSpark:      226,
	InkGround:     240,
}

// appendFg appends the SGR sequence selecting ink as foreground color.
func appendFg(b []byte, ink Ink) []byte {
	b = append(b, "\033[38;5;"...)
	b = strconv.AppendUint(b, uint64(inkPalette[ink]), 10)
	return append(b, 'm')
}

// appendBg appends the SGR sequence selecting ink as background color.
func appendBg(b []byte, ink Ink) []byte {
	b = append(b, "\033[48;5;"...)
	b = strconv.AppendUint(b, uint64(inkPalette[ink]), 10)
	return append(b, 'm')
}

// Palette returns the xterm-256 palette index of the ink.
func (i Ink) Palette() uint8 {
	if int(i) >= len(inkPalette) {
		return 0
	}
	return inkPalette[i]
}

// RGB returns the color of the ink as 8-bit channels, following the
// standard xterm-256 palette.
func (i Ink) RGB() (r, g, b uint8) {
	return paletteRGB(i.Palette())
}

var ansi16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func paletteRGB(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 16:
		c := ansi16[idx]
		return c[0], c[1], c[2]
	case idx < 232:
		i := int(idx) - 16
		level := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return level(i / 36), level(i / 6 % 6), level(i % 6)
	default:
		v := uint8(8 + 10*(int(idx)-232))
		return v, v, v
	}
}

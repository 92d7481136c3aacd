package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional). Without an alpha component the color is opaque; a
// transparent color such as "#00000000" gives a cutout over nothing.
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	hex = strings.TrimPrefix(hex, "#")

	alpha := uint8(255)
	switch len(hex) {
	case 3, 6:
	case 4, 8:
		n := len(hex) / 4
		a, err := strconv.ParseUint(strings.Repeat(hex[len(hex)-n:], 2/n), 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", "#"+hex, err)
		}
		alpha = uint8(a)
		hex = hex[:len(hex)-n]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %q", "#"+hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", "#"+hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// SolidBackground returns a width x height image filled with the given hex color.
func SolidBackground(width, height int, hex string) (*image.NRGBA, error) {
	if err := checkTarget("solid background", width, height); err != nil {
		return nil, err
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img, nil
}

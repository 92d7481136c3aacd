package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func maskFromPix(w, h int, pix []uint8) *BinaryMask {
	g := image.NewGray(image.Rect(0, 0, w, h))
	copy(g.Pix, pix)
	return &BinaryMask{Gray: g}
}

func TestComposite_HardSelection(t *testing.T) {
	a := color.NRGBA{255, 0, 0, 255}
	b := color.NRGBA{0, 255, 0, 255}
	c := color.NRGBA{0, 0, 255, 255}
	d := color.NRGBA{255, 255, 0, 255}
	e := color.NRGBA{10, 10, 10, 255}
	f := color.NRGBA{20, 20, 20, 255}
	g := color.NRGBA{30, 30, 30, 255}
	h := color.NRGBA{40, 40, 40, 255}

	source := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	source.SetNRGBA(0, 0, a)
	source.SetNRGBA(1, 0, b)
	source.SetNRGBA(0, 1, c)
	source.SetNRGBA(1, 1, d)

	background := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	background.SetNRGBA(0, 0, e)
	background.SetNRGBA(1, 0, f)
	background.SetNRGBA(0, 1, g)
	background.SetNRGBA(1, 1, h)

	mask := maskFromPix(2, 2, []uint8{255, 0, 0, 255})

	out, err := Composite(source, mask, background)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	want := [2][2]color.NRGBA{{a, f}, {g, d}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.NRGBAAt(x, y); got != want[y][x] {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want[y][x])
			}
		}
	}
}

func TestComposite_TransparentBackground(t *testing.T) {
	source := createInMemoryImage(4, 2, color.RGBA{200, 100, 0, 255})
	background, err := SolidBackground(4, 2, "#00000000")
	if err != nil {
		t.Fatalf("SolidBackground failed: %v", err)
	}

	out, err := Composite(source, halfMask(4, 2), background)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{200, 100, 0, 255}) {
		t.Errorf("foreground: got %v, want source", got)
	}
	if got := out.NRGBAAt(3, 1); got.A != 0 {
		t.Errorf("background: got %v, want fully transparent", got)
	}
}

func TestComposite_GraduatedBlend(t *testing.T) {
	source := createInMemoryImage(3, 1, color.RGBA{200, 100, 0, 255})
	background := createInMemoryImage(3, 1, color.RGBA{0, 100, 200, 255})
	mask := maskFromPix(3, 1, []uint8{0, 128, 255})

	out, err := Composite(source, mask, background)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{0, 100, 200, 255}},
		// 200*128/255 = 100.39, 200*127/255 = 99.6
		{1, color.NRGBA{100, 100, 100, 255}},
		{2, color.NRGBA{200, 100, 0, 255}},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("x=%d: got %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestComposite_OutputDimensions(t *testing.T) {
	source := image.NewRGBA(image.Rect(50, 50, 90, 80))
	background := createInMemoryImage(40, 30, color.Black)
	mask := maskFromPix(40, 30, nil)

	out, err := Composite(source, mask, background)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Errorf("bounds: got %v, want (0,0)-(40,30)", out.Bounds())
	}
}

func TestComposite_Mismatch(t *testing.T) {
	source := createInMemoryImage(4, 4, color.White)

	tests := []struct {
		name       string
		mask       *BinaryMask
		background image.Image
	}{
		{"mask too small", maskFromPix(2, 2, nil), createInMemoryImage(4, 4, color.Black)},
		{"background too large", maskFromPix(4, 4, nil), createInMemoryImage(5, 4, color.Black)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Composite(source, tt.mask, tt.background); err == nil {
				t.Error("Composite should fail on dimension mismatch")
			}
		})
	}
}

func TestComposite_MissingInputs(t *testing.T) {
	source := createInMemoryImage(2, 2, color.White)
	bg := createInMemoryImage(2, 2, color.Black)
	mask := maskFromPix(2, 2, nil)

	if _, err := Composite(nil, mask, bg); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("nil source: expected ErrEmptyInput, got %v", err)
	}
	if _, err := Composite(source, nil, bg); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("nil mask: expected ErrEmptyInput, got %v", err)
	}
	if _, err := Composite(source, mask, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("nil background: expected ErrEmptyInput, got %v", err)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b uint8
		m    uint32
		want uint8
	}{
		{200, 10, 255, 200},
		{200, 10, 0, 10},
		{255, 0, 51, 51},
		{0, 255, 51, 204},
	}
	for _, tt := range tests {
		if got := blend(tt.a, tt.b, tt.m); got != tt.want {
			t.Errorf("blend(%d,%d,%d) = %d, want %d", tt.a, tt.b, tt.m, got, tt.want)
		}
	}
}

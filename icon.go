package hostapp

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// iconSizes are the square sizes derived from the host icon. Window
// managers pick the closest one for title bars, task bars and switchers.
var iconSizes = []int{16, 32, 48}

// Icon is the application icon as raw RGBA8 pixels, row-major, without
// padding. The zero Icon means "no icon".
type Icon struct {
	Data          []byte
	Width, Height int
}

// IsZero reports whether no icon was supplied.
func (ic Icon) IsZero() bool {
	return len(ic.Data) == 0 && ic.Width == 0 && ic.Height == 0
}

// Validate checks that Data holds exactly Width x Height RGBA8 pixels.
func (ic Icon) Validate() error {
	if ic.IsZero() {
		return nil
	}
	if ic.Width <= 0 || ic.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidIcon, ic.Width, ic.Height)
	}
	if want := 4 * ic.Width * ic.Height; len(ic.Data) != want {
		return fmt.Errorf("%w: %d bytes of pixel data for %dx%d (want %d)",
			ErrInvalidIcon, len(ic.Data), ic.Width, ic.Height, want)
	}
	return nil
}

// Image returns the icon as an NRGBA image. The pixel data is copied.
func (ic Icon) Image() (*image.NRGBA, error) {
	if err := ic.Validate(); err != nil {
		return nil, err
	}
	if ic.IsZero() {
		return nil, nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, ic.Width, ic.Height))
	copy(img.Pix, ic.Data)
	return img, nil
}

// Candidates returns the icon followed by its square variants in
// iconSizes, scaled with Catmull-Rom. Variants larger than the source are
// skipped. A zero Icon yields no candidates.
func (ic Icon) Candidates() ([]image.Image, error) {
	src, err := ic.Image()
	if err != nil || src == nil {
		return nil, err
	}

	out := []image.Image{src}
	longest := max(ic.Width, ic.Height)
	for _, size := range iconSizes {
		if size >= longest {
			break
		}
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		out = append(out, dst)
	}
	return out, nil
}

// Package texture decodes matcap images and paints a fallback one.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	"github.com/chewxy/math32"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/textscene/pkg/math"
)

// ErrEmpty is returned for zero-length image data.
var ErrEmpty = errors.New("empty image data")

// Decode decodes PNG, JPEG, BMP or WebP data into RGBA. name is only used
// in error messages.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode %s: %w", name, ErrEmpty)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// Load reads and decodes the image at path.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return Decode(data, path)
}

// ToRGBA returns img as *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Procedural paints a size x size matcap of a glossy clay sphere lit from
// the upper left. It stands in when no matcap file can be loaded.
func Procedural(size int) *image.RGBA {
	size = max(size, 2)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	light := math.Vec3{X: -0.45, Y: 0.55, Z: 0.7}.Normalize()
	view := math.Vec3{Z: 1}
	half := light.Add(view).Normalize()
	base := math.Vec3{X: 0.78, Y: 0.66, Z: 0.58}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := (float32(x)+0.5)/float32(size)*2 - 1
			ny := 1 - (float32(y)+0.5)/float32(size)*2
			r2 := nx*nx + ny*ny
			if r2 > 1 {
				// Outside the disc: continue the rim so filtering at the edge stays smooth.
				r := math32.Sqrt(r2)
				nx, ny, r2 = nx/r, ny/r, 1
			}
			n := math.Vec3{X: nx, Y: ny, Z: math32.Sqrt(1 - r2)}

			diffuse := math32.Max(0, n.Dot(light))
			spec := math32.Pow(math32.Max(0, n.Dot(half)), 40)
			rim := math32.Pow(1-n.Z, 3) * 0.25

			c := base.Scale(0.22 + 0.78*diffuse).Add(math.Splat(spec*0.6 + rim))
			o := img.PixOffset(x, y)
			img.Pix[o] = toByte(c.X)
			img.Pix[o+1] = toByte(c.Y)
			img.Pix[o+2] = toByte(c.Z)
			img.Pix[o+3] = 255
		}
	}
	return img
}

func toByte(v float32) uint8 {
	return uint8(math32.Max(0, math32.Min(1, v))*255 + 0.5)
}

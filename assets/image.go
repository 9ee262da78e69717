package assets

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

// DecodeImage decodes any registered format into tightly packed RGBA rows,
// bottom row first as GL expects.
func DecodeImage(data []byte) (*image.RGBA, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	if rgba.Stride != 4*b.Dx() {
		return nil, errors.Errorf("unexpected stride for %s image", format)
	}
	flipVertical(rgba)
	return rgba, nil
}

func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// LoadTexture decodes an image file into a new texture owned by the caller.
func (c *Cache) LoadTexture(name string, mipmaps bool) (*gfx.Texture, error) {
	data, err := c.readFile(name)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	b := img.Bounds()
	return gfx.NewTexture(c.dev, gfx.TextureDesc{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  gfx.FormatRGBA8,
		Pixels:  img.Pix,
		Mipmaps: mipmaps,
	})
}

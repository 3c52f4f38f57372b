package world

import (
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder with image.Decode
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// TextureSpec is one entry in the fixed ordered texture table loaded at
// init (spec.md §6): a file path and its world-units-per-tile scale,
// configured per texture in code rather than in the level file.
type TextureSpec struct {
	Path           string
	XScale, YScale float64
}

// LoadTextures loads a fixed ordered table of texture files, matching
// original_source/src/render.c's render_load_texture branching on file
// extension (there: .bmp via SDL_LoadBMP, .png via IMG_Load). An
// unsupported extension fails the whole load, per spec.md §6 ("Unsupported
// extensions fail loading").
func LoadTextures(specs []TextureSpec) ([]*Texture, error) {
	out := make([]*Texture, len(specs))
	for i, spec := range specs {
		tex, err := loadTexture(spec)
		if err != nil {
			return nil, fmt.Errorf("loading texture %d (%s): %w", i, spec.Path, err)
		}
		out[i] = tex
	}
	return out, nil
}

func loadTexture(spec TextureSpec) (*Texture, error) {
	ext := strings.ToLower(filepath.Ext(spec.Path))

	f, err := os.Open(spec.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch ext {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".png":
		img, _, err = image.Decode(f)
	default:
		return nil, fmt.Errorf("filetype not supported for %s", spec.Path)
	}
	if err != nil {
		return nil, err
	}

	return packTexture(img, spec), nil
}

// packTexture flattens a decoded image into the packed row-major RGBA
// buffer Texture.At expects, so render-time sampling is a single slice
// index rather than a per-pixel image.Image.At call.
func packTexture(img image.Image, spec TextureSpec) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*4)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			pix[i+3] = byte(a >> 8)
			i += 4
		}
	}

	xscale, yscale := spec.XScale, spec.YScale
	if xscale == 0 {
		xscale = 1
	}
	if yscale == 0 {
		yscale = 1
	}

	return &Texture{W: w, H: h, Pix: pix, XScale: xscale, YScale: yscale}
}

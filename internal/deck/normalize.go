package deck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

var (
	letterboxColor = color.RGBA{A: 255}
	blankColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// isRaster reports whether data is a PNG or JPEG image
func isRaster(data []byte) bool {
	m := mimetype.Detect(data)
	return m.Is("image/png") || m.Is("image/jpeg")
}

// targetSize caps the width at maxWidth keeping the aspect ratio and
// rounds both sides down to even numbers for yuv420p.
func targetSize(w, h, maxWidth int) (int, int) {
	if maxWidth > 0 && w > maxWidth {
		h = h * maxWidth / w
		w = maxWidth
	}
	return w &^ 1, h &^ 1
}

func decodeSlide(data []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return src, nil
}

// canvasSize derives the frame size of a deck from one of its slides
func canvasSize(w, h, maxWidth int) (image.Point, error) {
	cw, ch := targetSize(w, h, maxWidth)
	if cw < 2 || ch < 2 {
		return image.Point{}, fmt.Errorf("image too small: %dx%d", w, h)
	}
	return image.Pt(cw, ch), nil
}

// fit scales src into size keeping its aspect ratio and centres it on
// letterbox bars. Images that only differ by an odd edge are trimmed.
func fit(src image.Image, size image.Point) *image.RGBA {
	out := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(out, out.Bounds(), image.NewUniform(letterboxColor), image.Point{}, draw.Src)

	b := src.Bounds()
	if b.Dx()&^1 == size.X && b.Dy()&^1 == size.Y {
		draw.Draw(out, out.Bounds(), src, b.Min, draw.Over)
		return out
	}

	w, h := size.X, size.Y
	if b.Dx()*size.Y > b.Dy()*size.X {
		h = max(1, b.Dy()*size.X/b.Dx())
	} else {
		w = max(1, b.Dx()*size.Y/b.Dy())
	}
	off := image.Pt((size.X-w)/2, (size.Y-h)/2)
	draw.CatmullRom.Scale(out, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, src, b, draw.Over, nil)
	return out
}

func blankFrame(size image.Point) *image.RGBA {
	out := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(out, out.Bounds(), image.NewUniform(blankColor), image.Point{}, draw.Src)
	return out
}

func writePNG(img image.Image, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// frameWriter puts every slide of one deck on the same canvas. The first
// decoded slide fixes the canvas; blank slides seen before it are held
// back until the size is known.
type frameWriter struct {
	maxWidth int
	size     image.Point
	pending  []string
}

func (fw *frameWriter) write(data []byte, dst string) error {
	src, err := decodeSlide(data)
	if err != nil {
		return err
	}

	if fw.size == (image.Point{}) {
		b := src.Bounds()
		size, err := canvasSize(b.Dx(), b.Dy(), fw.maxWidth)
		if err != nil {
			return err
		}
		if err := fw.flush(size); err != nil {
			return err
		}
	}
	return writePNG(fit(src, fw.size), dst)
}

func (fw *frameWriter) blank(dst string) error {
	if fw.size == (image.Point{}) {
		fw.pending = append(fw.pending, dst)
		return nil
	}
	return writePNG(blankFrame(fw.size), dst)
}

// flush fixes the canvas at size, if not fixed yet, and writes held back blanks
func (fw *frameWriter) flush(size image.Point) error {
	if fw.size == (image.Point{}) {
		fw.size = size
	}
	for _, dst := range fw.pending {
		if err := writePNG(blankFrame(fw.size), dst); err != nil {
			return err
		}
	}
	fw.pending = nil
	return nil
}

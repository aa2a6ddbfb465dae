package deck

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	mediaPrefix      = "ppt/media/"
	relNS            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// emuPerPixel converts slide EMUs to pixels at 96 dpi
	emuPerPixel = 9525
)

// defaultCanvas frames decks that carry neither pictures nor a slide size
var defaultCanvas = image.Pt(1280, 720)

var reDigits = regexp.MustCompile(`\d+`)

type presentationXML struct {
	Slides []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SlideSize struct {
		CX int `xml:"cx,attr"`
		CY int `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type relationshipsXML struct {
	Rels []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type archive struct {
	files map[string]*zip.File
}

func (a *archive) read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (a *archive) decode(name string, v interface{}) error {
	data, err := a.read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *implSource) extractPPTX(ctx context.Context, src, outDir string) ([]string, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open pptx archive: %w", err)
	}
	defer zr.Close()

	a := &archive{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.files[f.Name] = f
	}

	media, canvas, err := s.slideMedia(ctx, a)
	if err != nil {
		return nil, err
	}

	fw := &frameWriter{maxWidth: s.cfg.MaxWidth}
	images := make([]string, 0, len(media))
	for i, part := range media {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		if part != "" {
			if data, err = a.read(part); err != nil {
				return nil, err
			}
		}

		dst := pageName(outDir, i)
		if !isRaster(data) {
			s.logger.Warn(ctx, "Slide %d has no raster picture, using a blank frame", i+1)
			if err := fw.blank(dst); err != nil {
				return nil, fmt.Errorf("blank slide %d: %w", i+1, err)
			}
			images = append(images, dst)
			continue
		}

		if err := fw.write(data, dst); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", part, err)
		}
		images = append(images, dst)
	}

	if err := fw.flush(canvas); err != nil {
		return nil, err
	}
	return images, nil
}

// slideMedia returns one media part per slide in presentation order, with ""
// for slides that carry no picture, and the canvas for a deck without any
// pictures. It falls back to the media folder ordered by file number when
// the deck structure is missing.
func (s *implSource) slideMedia(ctx context.Context, a *archive) ([]string, image.Point, error) {
	if _, ok := a.files[presentationPart]; !ok {
		s.logger.Warn(ctx, "%s missing, ordering media by file name", presentationPart)
		return mediaByNumber(a), defaultCanvas, nil
	}

	var pres presentationXML
	if err := a.decode(presentationPart, &pres); err != nil {
		return nil, image.Point{}, err
	}
	var rels relationshipsXML
	if err := a.decode(presentationRels, &rels); err != nil {
		return nil, image.Point{}, err
	}

	canvas := defaultCanvas
	if sz := pres.SlideSize; sz.CX > 0 && sz.CY > 0 {
		if c, err := canvasSize(sz.CX/emuPerPixel, sz.CY/emuPerPixel, s.cfg.MaxWidth); err == nil {
			canvas = c
		}
	}

	byID := make(map[string]relationship, len(rels.Rels))
	for _, r := range rels.Rels {
		byID[r.ID] = r
	}

	media := make([]string, 0, len(pres.Slides))
	for i, sld := range pres.Slides {
		rel, ok := byID[sld.RID]
		if !ok {
			return nil, image.Point{}, fmt.Errorf("slide %d: relationship %s not found", i+1, sld.RID)
		}
		slidePart := resolvePart("ppt", rel.Target)

		part, err := slidePicture(a, slidePart)
		if err != nil {
			return nil, image.Point{}, err
		}
		media = append(media, part)
	}
	return media, canvas, nil
}

// slidePicture returns the first picture embedded in slidePart, in document order
func slidePicture(a *archive, slidePart string) (string, error) {
	relsPart := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
	if _, ok := a.files[relsPart]; !ok {
		return "", nil
	}

	var rels relationshipsXML
	if err := a.decode(relsPart, &rels); err != nil {
		return "", err
	}

	images := make(map[string]string)
	var firstRel string
	for _, r := range rels.Rels {
		if !strings.HasSuffix(r.Type, "/image") || r.TargetMode == "External" {
			continue
		}
		images[r.ID] = resolvePart(path.Dir(slidePart), r.Target)
		if firstRel == "" {
			firstRel = r.ID
		}
	}
	if len(images) == 0 {
		return "", nil
	}

	data, err := a.read(slidePart)
	if err != nil {
		return "", err
	}
	if id := firstEmbed(data, images); id != "" {
		return images[id], nil
	}
	return images[firstRel], nil
}

// firstEmbed scans slide XML for the first blip whose r:embed is a known image
func firstEmbed(data []byte, images map[string]string) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "blip" {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Space == relNS && attr.Name.Local == "embed" {
				if _, ok := images[attr.Value]; ok {
					return attr.Value
				}
			}
		}
	}
}

func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(base, target)
}

// mediaByNumber lists raster media parts ordered by the number in their name
func mediaByNumber(a *archive) []string {
	var media []string
	for name := range a.files {
		if !strings.HasPrefix(name, mediaPrefix) {
			continue
		}
		switch strings.ToLower(path.Ext(name)) {
		case ".png", ".jpg", ".jpeg":
			media = append(media, name)
		}
	}

	sort.Slice(media, func(i, j int) bool {
		ni, nj := mediaNumber(media[i]), mediaNumber(media[j])
		if ni != nj {
			return ni < nj
		}
		return media[i] < media[j]
	})
	return media
}

func mediaNumber(name string) int {
	digits := strings.Join(reDigits.FindAllString(path.Base(name), -1), "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

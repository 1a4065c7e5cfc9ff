package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// Pages are rasterized at 2.0x magnification. MuPDF's base resolution is
// 72 DPI, so this comes out to 144 DPI.
const renderDPI = 144

// jpegQuality balances payload size against legibility for the model.
const jpegQuality = 85

// RenderedPage is one rasterized PDF page, encoded as JPEG.
type RenderedPage struct {
	Data     []byte
	Width    int
	Height   int
	Rotation float64 // rotation applied during preprocessing, degrees
	Elapsed  time.Duration
}

// RenderPage rasterizes a single page of a PDF document. It returns an error
// if the document cannot be opened, has no pages, or the page index is out of
// range. The document handle is released on all paths.
func RenderPage(pdf []byte, page int) (*RenderedPage, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	return renderPage(doc, page)
}

// RenderAll rasterizes every page of a PDF document, one page per render
// call, in document order.
func RenderAll(pdf []byte) ([]*RenderedPage, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]*RenderedPage, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		page, err := renderPage(doc, i)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	return pages, nil
}

func renderPage(doc *fitz.Document, page int) (*RenderedPage, error) {
	start := time.Now()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page, doc.NumPage())
	}

	img, err := doc.ImageDPI(page, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}

	rotation := detectRotation(img)
	processed := applyRotation(img, rotation)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, processed, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	bounds := processed.Bounds()
	return &RenderedPage{
		Data:     buf.Bytes(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Rotation: rotation,
		Elapsed:  time.Since(start),
	}, nil
}

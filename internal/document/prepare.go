package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/heic"
)

// PrepareUpload turns an uploaded document into a list of base64-encoded
// JPEG page images ready to attach to an extraction request. PDFs are
// rendered page by page; single images become a one-element list. HEIC/HEIF
// photos (common from phones) are decoded with a pure Go decoder since the
// standard image package doesn't support them.
//
// Non-browser clients often declare a generic MIME type for any upload, so
// the %PDF magic bytes decide the branch regardless of the declared type.
func PrepareUpload(data []byte, contentType string) ([]string, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	if mimeType == "application/pdf" || bytes.HasPrefix(data, []byte("%PDF")) {
		pages, err := RenderAll(data)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF: %w", err)
		}
		encoded := make([]string, 0, len(pages))
		for _, page := range pages {
			encoded = append(encoded, EncodeBase64(page.Data))
		}
		return encoded, nil
	}

	jpegData, err := imageToJPEG(data, mimeType)
	if err != nil {
		return nil, err
	}
	return []string{EncodeBase64(jpegData)}, nil
}

// imageToJPEG converts any supported image format to JPEG
func imageToJPEG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			if strings.Contains(err.Error(), "unknown format") || strings.Contains(err.Error(), "unsupported") {
				return nil, fmt.Errorf("unsupported image format. Supported formats: JPEG, PNG, GIF, HEIC, HEIF, PDF. Error: %w", err)
			}
			return nil, fmt.Errorf("decoding image: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICFormat checks the ftyp box for HEIC/HEIF brands
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	if string(data[4:8]) == "ftyp" {
		brand := string(data[8:12])
		if brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1" {
			return true
		}
	}
	return false
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return mimeType == "image/heic" || mimeType == "image/heif" ||
		strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

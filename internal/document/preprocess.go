package document

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// detectRotation inspects a rasterized page for skew. Detection is not
// implemented yet and always reports zero; the RenderedPage.Rotation field
// is kept so callers don't change when it lands.
func detectRotation(img image.Image) float64 {
	return 0
}

// applyRotation rotates a page by the given angle in degrees, filling the
// exposed corners with white. A zero angle passes the image through.
func applyRotation(img image.Image, degrees float64) image.Image {
	if degrees == 0 {
		return img
	}
	return imaging.Rotate(img, degrees, color.White)
}

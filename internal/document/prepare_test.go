package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// makePNG builds a small solid-color PNG in memory
func makePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

// makePDF builds a valid one-page PDF with a correct xref table
func makePDF() []byte {
	var buf bytes.Buffer
	offsets := make([]int, 4)

	buf.WriteString("%PDF-1.4\n")
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n",
	}
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		buf.WriteString(obj)
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	buf.WriteString("trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

var _ = Describe("PrepareUpload", func() {
	When("a PDF arrives with a generic MIME type", func() {
		It("detects the PDF by its magic bytes and renders it", func() {
			pages, err := PrepareUpload(makePDF(), "application/octet-stream")
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))

			decoded, err := base64.StdEncoding.DecodeString(pages[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded[:2]).To(Equal([]byte{0xff, 0xd8}))
		})
	})

	When("uploading a PNG image", func() {
		It("produces a single base64 JPEG page", func() {
			pages, err := PrepareUpload(makePNG(), "image/png")
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(1))

			decoded, err := base64.StdEncoding.DecodeString(pages[0])
			Expect(err).NotTo(HaveOccurred())
			// JPEG SOI marker
			Expect(decoded[:2]).To(Equal([]byte{0xff, 0xd8}))
		})
	})

	When("the MIME type is missing", func() {
		It("assumes a PDF and fails softly on garbage", func() {
			pages, err := PrepareUpload([]byte("not an image"), "")
			Expect(err).To(HaveOccurred())
			Expect(pages).To(BeNil())
		})
	})

	When("uploading a corrupted PDF", func() {
		It("returns an error instead of crashing", func() {
			pages, err := PrepareUpload([]byte("%PDF-garbage"), "application/pdf")
			Expect(err).To(HaveOccurred())
			Expect(pages).To(BeNil())
		})
	})

	When("uploading an unreadable image", func() {
		It("returns an error", func() {
			_, err := PrepareUpload([]byte("not image data"), "image/jpeg")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("isHEICFormat", func() {
	It("recognizes the ftyp box brands", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic")...)
		data = append(data, make([]byte, 16)...)
		Expect(isHEICFormat(data)).To(BeTrue())
	})

	It("rejects short or unrelated data", func() {
		Expect(isHEICFormat([]byte("tiny"))).To(BeFalse())
		Expect(isHEICFormat(makePNG())).To(BeFalse())
	})
})

var _ = Describe("isHEICMimeType", func() {
	It("matches heic and heif variants", func() {
		Expect(isHEICMimeType("image/heic")).To(BeTrue())
		Expect(isHEICMimeType(" IMAGE/HEIF ")).To(BeTrue())
		Expect(isHEICMimeType("image/jpeg")).To(BeFalse())
	})
})

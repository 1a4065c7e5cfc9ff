package extraction

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockBackend is a mock implementation of Backend
type mockBackend struct {
	response     string
	invokeErr    error
	gotPrompt    string
	gotImages    []string
	gotMaxTokens int
	closed       bool
}

func (m *mockBackend) Invoke(ctx context.Context, prompt string, images []string, maxTokens int) (string, error) {
	m.gotPrompt = prompt
	m.gotImages = images
	m.gotMaxTokens = maxTokens
	if m.invokeErr != nil {
		return "", m.invokeErr
	}
	return m.response, nil
}

func (m *mockBackend) Close() error {
	m.closed = true
	return nil
}

var _ = Describe("Client", func() {
	var (
		backend *mockBackend
		client  *Client
		images  []string
		result  *ExtractionResult
		err     error
	)

	BeforeEach(func() {
		backend = &mockBackend{}
		images = []string{"aW1hZ2Ux"}
	})

	JustBeforeEach(func() {
		client = NewClient(backend, 0, nil)
		result, err = client.Extract(context.Background(), images)
	})

	When("the backend returns a well-formed answer", func() {
		BeforeEach(func() {
			backend.response = `{
				"document_type": "invoice",
				"invoices": [{
					"number": "INV-100",
					"amount": "1,000.00",
					"currency_code": "EUR",
					"vendor": "ACME GmbH",
					"line_items": []
				}]
			}`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should normalize the amounts", func() {
			Expect(result.Invoices).To(HaveLen(1))
			Expect(result.Invoices[0].Amount).To(Equal(1000.0))
			Expect(result.Invoices[0].CurrencyCode).To(Equal("EUR"))
		})

		It("should send the fixed instruction to the backend", func() {
			Expect(backend.gotPrompt).To(ContainSubstring("accounts payable inbox"))
			Expect(backend.gotImages).To(Equal(images))
		})

		It("should apply the default generation budget", func() {
			Expect(backend.gotMaxTokens).To(Equal(DefaultMaxTokens))
		})
	})

	When("the answer is wrapped in markdown code fences", func() {
		BeforeEach(func() {
			backend.response = "```json\n{\"document_type\": \"statement\", \"invoices\": []}\n```"
		})

		It("should still decode the JSON", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DocumentType).To(Equal(DocTypeStatement))
			Expect(result.Invoices).To(BeEmpty())
		})
	})

	When("the answer text is not valid JSON", func() {
		BeforeEach(func() {
			backend.response = "I could not read this document, sorry."
		})

		It("returns an absent result and an error", func() {
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	When("the envelope has the wrong shape", func() {
		BeforeEach(func() {
			backend.response = `{"document_type": "invoice", "invoices": "not a list"}`
		})

		It("returns ErrWrongShape", func() {
			Expect(err).To(MatchError(ErrWrongShape))
			Expect(result).To(BeNil())
		})
	})

	When("the backend fails", func() {
		BeforeEach(func() {
			backend.invokeErr = errors.New("connection refused")
		})

		It("returns an absent result and an error", func() {
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	When("no images are supplied", func() {
		BeforeEach(func() {
			images = nil
		})

		It("returns an error without invoking the backend", func() {
			Expect(err).To(HaveOccurred())
			Expect(backend.gotPrompt).To(BeEmpty())
		})
	})

	Describe("Close", func() {
		It("closes the backend", func() {
			c := NewClient(backend, LegacyMaxTokens, nil)
			Expect(c.Close()).To(Succeed())
			Expect(backend.closed).To(BeTrue())
		})
	})
})

var _ = Describe("extractJSON", func() {
	It("passes plain JSON through", func() {
		raw, err := extractJSON(`{"a": 1}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`{"a": 1}`))
	})

	It("strips surrounding prose", func() {
		raw, err := extractJSON("Here is the result:\n{\"a\": 1}\nThanks!")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`{"a": 1}`))
	})

	It("errors when no object is present", func() {
		_, err := extractJSON("no braces here")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("validateEnvelope", func() {
	It("accepts a conforming envelope", func() {
		err := validateEnvelope([]byte(`{"document_type": "other", "invoices": [{"number": "1"}]}`))
		Expect(err).NotTo(HaveOccurred())
	})

	It("accepts an envelope with both keys absent", func() {
		Expect(validateEnvelope([]byte(`{}`))).To(Succeed())
	})

	It("rejects a non-string document type", func() {
		err := validateEnvelope([]byte(`{"document_type": 7}`))
		Expect(err).To(MatchError(ErrWrongShape))
	})

	It("rejects invoices whose entries are not objects", func() {
		err := validateEnvelope([]byte(`{"invoices": ["INV01"]}`))
		Expect(err).To(MatchError(ErrWrongShape))
	})

	It("rejects a non-object envelope", func() {
		err := validateEnvelope([]byte(`[1, 2, 3]`))
		Expect(err).To(MatchError(ErrWrongShape))
	})
})

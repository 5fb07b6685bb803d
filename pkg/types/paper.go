// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperRecord holds the extracted metadata for one conference submission.
// Title is the only required field; a record without a title is never
// emitted. All URLs are absolute, resolved against the site base URL.
type PaperRecord struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in document order. Never reordered
	// or deduplicated.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Abstract is filled in during detail-page enrichment, if enabled.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// PDFURL points at the paper PDF.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// SupplementaryURL points at the supplementary material, if any.
	SupplementaryURL string `json:"supplementary_url,omitempty" yaml:"supplementary_url,omitempty"`
}

// HasAbstract reports whether the record carries a non-empty abstract.
func (p PaperRecord) HasAbstract() bool { return p.Abstract != "" }

// HasPDF reports whether the record carries a PDF link.
func (p PaperRecord) HasPDF() bool { return p.PDFURL != "" }

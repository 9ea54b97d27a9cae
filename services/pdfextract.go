package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const summaryMaxRunes = 500

// PDFMetadata is what gets stored in a document's metadata map for uploaded
// PDFs: a page count and a short plain-text summary of the first pages.
type PDFMetadata struct {
	PageCount int
	Summary   string
}

// ExtractPDFMetadata parses an uploaded PDF and derives display metadata.
// Extraction is best-effort: scanned or malformed PDFs return an error and
// the upload proceeds without metadata.
func ExtractPDFMetadata(content []byte) (*PDFMetadata, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty PDF content")
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	var textBuilder strings.Builder
	for i := 1; i <= numPages && textBuilder.Len() < summaryMaxRunes*4; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	summary := strings.Join(strings.Fields(textBuilder.String()), " ")
	if runes := []rune(summary); len(runes) > summaryMaxRunes {
		summary = string(runes[:summaryMaxRunes]) + "..."
	}

	return &PDFMetadata{
		PageCount: numPages,
		Summary:   summary,
	}, nil
}

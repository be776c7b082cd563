// Package pdf provides PDF text extraction.
//
// We use the ledongthuc/pdf library for text extraction.
// It's a pure Go implementation with no CGO or external dependencies required.
package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

// headerVersion matches the "%PDF-1.7" style header at the start of a file.
var headerVersion = regexp.MustCompile(`^%PDF-(\d+\.\d+)`)

// Extractor turns raw PDF bytes into text, a page count and metadata.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates an extractor that logs through log.
func NewExtractor(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract reads a PDF held in memory and extracts its text and Info metadata.
//
// The pdf library requires io.ReaderAt for random access to the PDF
// structure, so the whole upload is wrapped in a bytes.Reader.
func (e *Extractor) Extract(data []byte) (doc *models.ExtractedDocument, err error) {
	// The parser panics on some malformed inputs instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages are images only; keep going with the rest
			e.log.Warn("page text extraction failed", zap.Int("page", i), zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return &models.ExtractedDocument{
		Text:      strings.Join(pages, "\n\n"),
		PageCount: pageCount,
		Metadata:  metadata(reader, data),
	}, nil
}

// metadata flattens the document Info dictionary into strings and adds the
// format version from the file header.
func metadata(reader *pdf.Reader, data []byte) map[string]string {
	meta := make(map[string]string)

	if m := headerVersion.FindSubmatch(data); m != nil {
		meta["PDFFormatVersion"] = string(m[1])
	}

	info := reader.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return meta
	}

	for _, key := range info.Keys() {
		v := info.Key(key)
		switch v.Kind() {
		case pdf.String:
			if s := strings.TrimSpace(v.Text()); s != "" {
				meta[key] = s
			}
		case pdf.Name:
			meta[key] = v.Name()
		case pdf.Integer, pdf.Real, pdf.Bool:
			meta[key] = v.String()
		}
	}
	return meta
}

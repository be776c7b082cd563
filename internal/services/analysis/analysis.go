// Package analysis orchestrates the per-request flows: extract a PDF once,
// then either ask the model for a summary or run a web search.
//
// Every flow is a straight line with no intermediate state. The request
// context is the only cancellation boundary and is passed to every
// external call.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shimizu-Technology/pdf-analysis-api/internal/metrics"
	"github.com/Shimizu-Technology/pdf-analysis-api/internal/models"
)

const (
	// MaxPromptChars is how much extracted text is embedded in the prompt.
	MaxPromptChars = 10000
	// MaxQueryChars is the length of a search query derived from text.
	MaxQueryChars = 200
	// PreviewChars is the length of textPreview in PDF search responses.
	PreviewChars = 500
)

// SystemPrompt fixes the model's role for every analysis.
const SystemPrompt = "You are a helpful assistant that analyzes PDF documents and provides structured summaries."

// Extractor turns PDF bytes into text and metadata.
type Extractor interface {
	Extract(data []byte) (*models.ExtractedDocument, error)
}

// Completer sends a system instruction and prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResults, error)
}

// Service wires extraction, the model and search together.
type Service struct {
	extractor Extractor
	model     Completer
	searcher  Searcher
	log       *zap.Logger
}

// New creates an analysis service.
func New(extractor Extractor, model Completer, searcher Searcher, log *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		model:     model,
		searcher:  searcher,
		log:       log,
	}
}

// Extract runs the extraction adapter and logs the outcome.
func (s *Service) Extract(doc *models.UploadedDocument) (*models.ExtractedDocument, error) {
	s.log.Info("processing PDF",
		zap.String("filename", doc.Filename),
		zap.Int64("size", doc.Size))

	extracted, err := s.extractor.Extract(doc.Content)
	if err != nil {
		s.log.Error("PDF extraction failed", zap.String("filename", doc.Filename), zap.Error(err))
		return nil, err
	}

	metrics.PDFPages.Observe(float64(extracted.PageCount))
	s.log.Info("PDF processed",
		zap.String("filename", doc.Filename),
		zap.Int("pages", extracted.PageCount))
	return extracted, nil
}

// Summarize builds the analysis prompt and returns the model's reply verbatim.
func (s *Service) Summarize(ctx context.Context, filename string, pages int, text string) (string, error) {
	s.log.Info("sending document for analysis", zap.String("filename", filename))

	analysis, err := s.model.Complete(ctx, SystemPrompt, BuildPrompt(filename, pages, text))
	if err != nil {
		return "", err
	}

	s.log.Info("analysis completed", zap.String("filename", filename))
	return analysis, nil
}

// AnalyzePDF extracts doc and attaches the model's analysis.
func (s *Service) AnalyzePDF(ctx context.Context, doc *models.UploadedDocument) (*models.AnalysisResult, error) {
	extracted, err := s.Extract(doc)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Summarize(ctx, doc.Filename, extracted.PageCount, extracted.Text)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		Success:    true,
		Filename:   doc.Filename,
		Pages:      extracted.PageCount,
		Text:       extracted.Text,
		Info:       extracted.Metadata,
		AIAnalysis: analysis,
	}, nil
}

// SearchPDF extracts doc and runs a web search with userQuery, or with the
// start of the extracted text when userQuery is empty.
func (s *Service) SearchPDF(ctx context.Context, doc *models.UploadedDocument, userQuery string) (*models.PDFSearchEnvelope, error) {
	extracted, err := s.Extract(doc)
	if err != nil {
		return nil, err
	}

	query := SearchQuery(extracted.Text, userQuery)
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &models.PDFSearchEnvelope{
		Success: true,
		PDF: models.PDFSummary{
			Filename:    doc.Filename,
			Pages:       extracted.PageCount,
			TextPreview: Truncate(extracted.Text, PreviewChars),
		},
		Search: models.SearchSection{
			Query:        query,
			Results:      resultItems(results),
			TotalResults: totalResults(results),
		},
	}, nil
}

// Search runs a web search for query with no PDF involved.
func (s *Service) Search(ctx context.Context, query string) (*models.SearchEnvelope, error) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &models.SearchEnvelope{
		Success:      true,
		Query:        query,
		Results:      resultItems(results),
		TotalResults: totalResults(results),
	}, nil
}

// BuildPrompt embeds the filename, page count and the first MaxPromptChars
// characters of text in the user prompt. The cut is hard: no word boundary
// handling and no truncation marker.
func BuildPrompt(filename string, pages int, text string) string {
	return fmt.Sprintf("Please analyze this PDF document and provide a summary:\n\nFilename: %s\nPages: %d\n\nContent:\n%s",
		filename, pages, Truncate(text, MaxPromptChars))
}

// SearchQuery returns userQuery unchanged when set, otherwise the first
// MaxQueryChars characters of text.
func SearchQuery(text, userQuery string) string {
	if userQuery != "" {
		return userQuery
	}
	return Truncate(text, MaxQueryChars)
}

// Truncate returns the first n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func resultItems(r *models.SearchResults) []models.SearchResultItem {
	if r == nil || r.Items == nil {
		return []models.SearchResultItem{}
	}
	return r.Items
}

func totalResults(r *models.SearchResults) string {
	if r == nil || r.TotalResults == "" {
		return "0"
	}
	return r.TotalResults
}

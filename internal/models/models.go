// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Everything here is request-scoped: nothing is stored once the response
// has been written.
//
// JSON tags use camelCase because the browser page consumes these envelopes
// directly.
package models

// UploadedDocument is a PDF received in a multipart request, fully buffered
// in memory. It is discarded when the request ends.
type UploadedDocument struct {
	Filename    string
	Size        int64
	ContentType string
	Content     []byte
}

// ExtractedDocument is the text and metadata pulled out of a PDF.
type ExtractedDocument struct {
	Text      string
	PageCount int
	Metadata  map[string]string
}

// SearchResultItem is one hit from the web search provider.
type SearchResultItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Snippet     string `json:"snippet"`
}

// SearchResults is the provider response reduced to what the API returns.
// Items keeps the provider's ranking.
type SearchResults struct {
	Items        []SearchResultItem
	TotalResults string
}

// --- Request/Response DTOs ---

// SearchRequest is the JSON body for POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// AnalysisResult is the response for POST /api/upload-pdf.
type AnalysisResult struct {
	Success    bool              `json:"success"`
	Filename   string            `json:"filename"`
	Pages      int               `json:"pages"`
	Text       string            `json:"text"`
	Info       map[string]string `json:"info"`
	AIAnalysis string            `json:"aiAnalysis,omitempty"`
}

// SearchEnvelope is the response for POST /api/search.
type SearchEnvelope struct {
	Success      bool               `json:"success"`
	Query        string             `json:"query"`
	Results      []SearchResultItem `json:"results"`
	TotalResults string             `json:"totalResults"`
}

// PDFSummary is the short description of a PDF embedded in search responses.
type PDFSummary struct {
	Filename    string `json:"filename"`
	Pages       int    `json:"pages"`
	TextPreview string `json:"textPreview"`
}

// SearchSection is the search half of a PDF search response.
type SearchSection struct {
	Query        string             `json:"query"`
	Results      []SearchResultItem `json:"results"`
	TotalResults string             `json:"totalResults"`
}

// PDFSearchEnvelope is the response for POST /api/upload-pdf-and-search.
type PDFSearchEnvelope struct {
	Success bool          `json:"success"`
	PDF     PDFSummary    `json:"pdf"`
	Search  SearchSection `json:"search"`
}

// ErrorResponse is the error format for all API errors.
// Details carries the upstream error message for 500s.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"docgen/internal/document"
	"docgen/internal/theme"
	"docgen/internal/totals"
	"docgen/pkg/models"
)

// Index describes the service.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "docgen",
		"version":   s.version,
		"endpoints": Endpoints,
		"auth": map[string]string{
			headerKey1: "first API key, required on generation endpoints",
			headerKey2: "second API key, required on generation endpoints",
		},
		"formats": []models.Format{models.FormatPDF, models.FormatHTML},
		"themes":  theme.IDs(),
	})
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format("2006-01-02 15:04:05"),
		"version":   s.version,
	})
}

// Themes lists the theme ids and the default.
func (s *Server) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"themes":  theme.IDs(),
		"default": s.cfg.DefaultTheme,
	})
}

// Example returns the sample quote payload with its computed totals.
func (s *Server) Example(w http.ResponseWriter, r *http.Request) {
	doc := models.ExampleDocument(s.now())
	t := totals.Compute(doc.Items)
	writeJSON(w, http.StatusOK, map[string]any{
		"example": doc,
		"totals": map[string]string{
			"pre_tax": t.PreTax.StringFixed(2),
			"tax":     t.Tax.StringFixed(2),
			"due":     t.Due.StringFixed(2),
		},
		"required_fields": []string{"customer.name", "items"},
		"endpoint":        "POST /api/quotes",
	})
}

// CreateQuote renders the posted document as a quote.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	s.create(w, r, models.KindQuote)
}

// CreateInvoice renders the posted document as an invoice.
func (s *Server) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	s.create(w, r, models.KindInvoice)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	var doc models.Document
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	doc.Kind = kind
	if err := doc.Validate(); err != nil {
		s.fail(w, err)
		return
	}

	out, err := s.gen.Generate(r.Context(), &doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeFile(w, out)
}

// TestQuote renders the sample quote as a PDF.
func (s *Server) TestQuote(w http.ResponseWriter, r *http.Request) {
	doc := models.ExampleDocument(s.now())
	out, err := s.gen.GenerateQuotePDF(r.Context(), &doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeFile(w, out)
}

// TestAuth confirms the API keys are accepted.
func (s *Server) TestAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "authentication succeeded"})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	var valErr *models.ValidationError
	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, valErr.Error())
	case errors.Is(err, document.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "unsupported format, use pdf or html")
	default:
		s.log.Error().Err(err).Msg("Document generation failed")
		writeError(w, http.StatusInternalServerError, "document generation failed")
	}
}

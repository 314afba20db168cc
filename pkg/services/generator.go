package services

import (
	"context"

	"docgen/internal/document"
	"docgen/pkg/models"
)

// DocumentGenerator defines the interface for turning quote and invoice data into files
type DocumentGenerator interface {
	// Generate renders doc in the kind and format it names
	Generate(ctx context.Context, doc *models.Document) (*document.Output, error)

	// GenerateQuotePDF renders doc as a PDF quote regardless of its kind and format
	GenerateQuotePDF(ctx context.Context, doc *models.Document) (*document.Output, error)
}

var _ DocumentGenerator = (*document.Service)(nil)

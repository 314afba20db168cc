package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the display layout for issue, expiration and due dates.
const DateLayout = "02/01/2006"

// Kind distinguishes quotes from invoices.
type Kind string

const (
	KindQuote   Kind = "quote"
	KindInvoice Kind = "invoice"
)

// PaymentStatus is the invoice payment state.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
	StatusLate    PaymentStatus = "late"
)

// Label returns the human readable status.
func (s PaymentStatus) Label() string {
	switch s {
	case StatusPaid:
		return "Paid"
	case StatusLate:
		return "Late"
	case StatusPartial:
		return "Partially paid"
	default:
		return "Pending"
	}
}

// Format is the requested output encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// LineItem is one billed line. Subtotal and tax are always derived, never read from input.
type LineItem struct {
	Description string          `json:"description"`
	Details     []string        `json:"details,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // percent
	Discount    decimal.Decimal `json:"discount"` // amount off the pre-tax subtotal
}

// DefaultTaxRate applies when a line item omits its tax rate.
var DefaultTaxRate = decimal.NewFromInt(20)

// UnmarshalJSON applies the quantity and tax-rate defaults for absent fields.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	item := plain{Quantity: 1, TaxRate: DefaultTaxRate}
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*li = LineItem(item)
	return nil
}

// Party is a supplier or customer identity block.
type Party struct {
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	RegistrationID string `json:"registration_id,omitempty"`
	TaxID          string `json:"tax_id,omitempty"`
}

// BankDetails holds the payment coordinates printed on the document.
type BankDetails struct {
	BankName string `json:"bank_name,omitempty"`
	IBAN     string `json:"iban,omitempty"`
	BIC      string `json:"bic,omitempty"`
}

// Document is a quote or an invoice. Invoice-only fields are ignored for quotes.
type Document struct {
	Kind   Kind   `json:"kind"`
	Number string `json:"number,omitempty"`

	IssueDate string `json:"issue_date,omitempty"`
	// SecondDate is the expiration date of a quote or the due date of an invoice.
	SecondDate string `json:"second_date,omitempty"`

	PaymentTerms string `json:"payment_terms,omitempty"`
	LatePenalty  string `json:"late_penalty,omitempty"`
	Intro        string `json:"intro,omitempty"`
	Conclusion   string `json:"conclusion,omitempty"`

	LogoURL string `json:"logo_url,omitempty"`
	Logo    []byte `json:"logo,omitempty"` // raw image bytes, base64 in JSON

	Supplier Party       `json:"supplier"`
	Customer Party       `json:"customer"`
	Bank     BankDetails `json:"bank"`

	Theme  string     `json:"theme,omitempty"`
	Format Format     `json:"format,omitempty"`
	Items  []LineItem `json:"items"`

	// Invoice only
	Status         PaymentStatus `json:"status,omitempty"`
	PurchaseOrder  string        `json:"purchase_order,omitempty"`
	QuoteReference string        `json:"quote_reference,omitempty"`
}

// IsInvoice reports whether the document is an invoice.
func (d *Document) IsInvoice() bool {
	return d.Kind == KindInvoice
}

// Normalize fills defaults and coerces malformed numerics before totals are computed.
func (d *Document) Normalize(now time.Time) {
	if d.Kind != KindInvoice {
		d.Kind = KindQuote
	}
	if d.Number == "" {
		d.Number = GenerateNumber(d.Kind, now)
	}
	if d.IssueDate == "" {
		d.IssueDate = now.Format(DateLayout)
	}
	if d.SecondDate == "" {
		d.SecondDate = now.AddDate(0, 0, 30).Format(DateLayout)
	}
	d.Format = Format(strings.ToLower(string(d.Format)))
	if d.Format == "" {
		d.Format = FormatPDF
	}
	if d.IsInvoice() && d.Status == "" {
		d.Status = StatusPending
	}
	for i := range d.Items {
		item := &d.Items[i]
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		item.UnitPrice = nonNegative(item.UnitPrice)
		item.TaxRate = nonNegative(item.TaxRate)
		item.Discount = nonNegative(item.Discount)
	}
}

// Validate checks the fields the request layer requires before rendering.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Customer.Name) == "" {
		return NewValidationError("customer.name", d.Customer.Name, "is required")
	}
	if len(d.Items) == 0 {
		return NewValidationError("items", len(d.Items), "at least one item is required")
	}
	return nil
}

// GenerateNumber builds a document number such as "D-2026-3fa" or "F-2026-b71".
func GenerateNumber(kind Kind, now time.Time) string {
	prefix := "D"
	if kind == KindInvoice {
		prefix = "F"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.Year(), uuid.NewString()[:3])
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValidationError reports a missing or invalid document field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Package compose arranges a quote or an invoice into an ordered list of
// visual blocks. Quotes and invoices share one composer: invoices add a
// separator rule, the payment status, the order/quote references and a legal
// notice; quotes add the signature box.
//
// Composition never fails. Missing optional data drops the matching line or
// block.
package compose

import (
	"strings"

	"docgen/internal/asset"
	"docgen/internal/theme"
	"docgen/internal/totals"
	"docgen/pkg/models"
)

// ColumnWidths of the item table, in millimetres. They add up to the A4 content width.
var ColumnWidths = [5]float64{75, 18, 28, 22, 27}

const legalNotice = "VAT payable on receipts. In case of late payment, a penalty of three times " +
	"the legal interest rate applies, together with a fixed recovery fee of 40 euros " +
	"(article L441-10 of the French Commercial Code)."

// Compose builds the block sequence of doc.
func Compose(doc *models.Document, t totals.Totals, palette theme.Palette, logo *asset.Image) []Block {
	var blocks []Block

	blocks = append(blocks, header(doc, logo))
	if doc.IsInvoice() {
		blocks = append(blocks,
			Spacer{Height: 5},
			Rule{Color: palette.Primary, Thickness: 1},
		)
	}
	blocks = append(blocks,
		Spacer{Height: 10},
		metadata(doc, palette),
		Spacer{Height: 10},
		parties(doc),
		Spacer{Height: 15},
	)

	if doc.Intro != "" {
		blocks = append(blocks,
			Paragraph{Text: doc.Intro, Size: 10, Color: palette.Primary},
			Spacer{Height: 10},
		)
	}

	blocks = append(blocks,
		Table(doc.Items, palette),
		Spacer{Height: 15},
		Totals(t),
	)

	hasTerms := doc.PaymentTerms != ""
	hasBank := doc.Bank.BankName != ""
	if hasTerms || hasBank || doc.Conclusion != "" {
		blocks = append(blocks, Spacer{Height: 15})
	}
	if hasTerms {
		blocks = append(blocks,
			Conditions{Title: "PAYMENT TERMS", Terms: doc.PaymentTerms, Penalty: doc.LatePenalty},
			Spacer{Height: 10},
		)
	}
	if hasBank {
		blocks = append(blocks, bank(doc), Spacer{Height: 10})
	}
	if doc.Conclusion != "" {
		blocks = append(blocks,
			Paragraph{Text: doc.Conclusion, Size: 10, Color: theme.Black},
			Spacer{Height: 10},
		)
	}

	if doc.IsInvoice() {
		blocks = append(blocks, Paragraph{Text: legalNotice, Size: 8, Color: theme.Grey})
	} else {
		blocks = append(blocks,
			Spacer{Height: 15},
			Signature{Lines: []string{"Approved", "Date and signature:"}},
		)
	}
	return blocks
}

func header(doc *models.Document, logo *asset.Image) Header {
	if doc.IsInvoice() {
		size := 18.0
		if logo != nil {
			size = 16
		}
		return Header{Title: "INVOICE", TitleSize: size, Logo: logo}
	}
	return Header{Title: "Quote", TitleSize: 18, Logo: logo}
}

func metadata(doc *models.Document, palette theme.Palette) InfoPair {
	var pair InfoPair
	add := func(label, value string) {
		pair.Left = append(pair.Left, Line{Text: label, Bold: true})
		pair.Right = append(pair.Right, Line{Text: value})
	}

	if !doc.IsInvoice() {
		add("Quote number", doc.Number)
		add("Issue date", doc.IssueDate)
		add("Expiration date", doc.SecondDate)
		return pair
	}

	add("Invoice number", doc.Number)
	add("Issue date", doc.IssueDate)
	add("Due date", doc.SecondDate)

	color := StatusColor(doc.Status, palette)
	pair.Left = append(pair.Left, Line{Text: "Status", Bold: true})
	pair.Right = append(pair.Right, Line{Text: doc.Status.Label(), Bold: true, Color: &color})

	if doc.PurchaseOrder != "" {
		add("Purchase order", doc.PurchaseOrder)
	}
	if doc.QuoteReference != "" {
		add("Quote ref.", doc.QuoteReference)
	}
	return pair
}

// StatusColor maps a payment status to its display colour.
func StatusColor(status models.PaymentStatus, palette theme.Palette) theme.Color {
	switch status {
	case models.StatusLate:
		return theme.Red
	case models.StatusPaid:
		return theme.Green
	default:
		return palette.Accent
	}
}

func parties(doc *models.Document) InfoPair {
	supplier := doc.Supplier
	left := []Line{{Text: supplier.Name, Bold: true}}
	left = appendNonEmpty(left, supplier.Address, supplier.City, supplier.Email)
	if supplier.Phone != "" {
		left = append(left, Line{Text: "Tel: " + supplier.Phone})
	}
	left = appendNonEmpty(left, supplier.RegistrationID)

	customer := doc.Customer
	right := []Line{{Text: customer.Name, Bold: true}}
	right = appendNonEmpty(right, customer.Address, customer.City, customer.Email)
	if customer.Phone != "" {
		right = append(right, Line{Text: "Tel: " + customer.Phone})
	}
	right = appendNonEmpty(right, customer.RegistrationID)
	if customer.TaxID != "" {
		right = append(right, Line{Text: "VAT number: " + customer.TaxID})
	}

	return InfoPair{Left: left, Right: right}
}

func appendNonEmpty(lines []Line, texts ...string) []Line {
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			lines = append(lines, Line{Text: text})
		}
	}
	return lines
}

// Totals builds the three-row totals block. Empty documents are not special-cased.
func Totals(t totals.Totals) TotalsBlock {
	return TotalsBlock{Rows: [3]TotalsRow{
		{Label: "Total excl. tax", Value: totals.Money(t.PreTax)},
		{Label: "Total VAT", Value: totals.Money(t.Tax)},
		{Label: "Total incl. tax", Value: totals.Money(t.Due), Bold: true},
	}}
}

func bank(doc *models.Document) Bank {
	b := Bank{Title: "BANK DETAILS"}
	if doc.IsInvoice() {
		b.Title = "BANK DETAILS FOR PAYMENT"
	}
	for _, f := range []Field{
		{Label: "Bank:", Value: doc.Bank.BankName},
		{Label: "IBAN:", Value: doc.Bank.IBAN},
		{Label: "BIC:", Value: doc.Bank.BIC},
	} {
		if f.Value != "" {
			b.Fields = append(b.Fields, f)
		}
	}
	return b
}

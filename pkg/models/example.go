package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExampleDocument returns the documented sample quote: three items, one discounted.
func ExampleDocument(now time.Time) Document {
	return Document{
		Kind:       KindQuote,
		Number:     "FORM-" + now.Format("20060102") + "-001",
		IssueDate:  now.Format(DateLayout),
		SecondDate: now.AddDate(0, 0, 30).Format(DateLayout),
		Supplier: Party{
			Name:           "Formation Web Academy",
			Address:        "123 Rue de la Formation",
			City:           "75001 Paris, France",
			Email:          "contact@formation-web.fr",
			Phone:          "+33 1 23 45 67 89",
			RegistrationID: "12345678901234",
		},
		Customer: Party{
			Name:           "Entreprise Cliente SARL",
			Address:        "456 Avenue du Commerce",
			City:           "69000 Lyon, France",
			Email:          "client@entreprise.com",
			Phone:          "+33 4 56 78 90 12",
			RegistrationID: "98765432109876",
			TaxID:          "FR12345678901",
		},
		Bank: BankDetails{
			BankName: "Banque Populaire",
			IBAN:     "FR76 1234 5678 9012 3456 7890 123",
			BIC:      "CCBPFRPPXXX",
		},
		Theme:        "blue",
		Format:       FormatPDF,
		PaymentTerms: "Payment within 30 days",
		LatePenalty:  "Late payments incur a penalty of three times the legal interest rate.",
		Intro:        "Following our meeting, we are pleased to submit our proposal.",
		Conclusion:   "We remain at your disposal for any further information.",
		Items: []LineItem{
			{
				Description: "Complete web development training",
				Details: []string{
					"HTML5 / CSS3",
					"JavaScript ES6+",
					"React framework",
					"REST APIs",
				},
				Quantity:  5,
				UnitPrice: decimal.NewFromInt(800),
				TaxRate:   DefaultTaxRate,
			},
			{
				Description: "Post-training technical support",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(150),
				TaxRate:     DefaultTaxRate,
			},
			{
				Description: "E-learning platform access (1 year)",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(299),
				TaxRate:     DefaultTaxRate,
				Discount:    decimal.NewFromInt(50),
			},
		},
	}
}

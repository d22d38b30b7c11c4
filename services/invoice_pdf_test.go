package services

import (
	"testing"
	"time"

	"juriscloud/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderInvoiceHTML(t *testing.T) {
	companyName := "Render Corp"
	invoice := &models.Invoice{
		InvoiceNumber: "PDF-001",
		Status:        models.InvoiceStatusSent,
		IssueDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:      1000,
		TaxRate:       0.2,
		TaxAmount:     200,
		TotalAmount:   1200,
		Client: &models.Client{
			ClientType:  models.ClientTypeOrganization,
			CompanyName: &companyName,
		},
		Lines: []models.InvoiceLine{
			{Description: "Advisory & review", Quantity: 4, UnitPrice: 250, TotalPrice: 1000},
		},
	}

	html, err := RenderInvoiceHTML(invoice)
	assert.NoError(t, err)

	assert.Contains(t, html, "PDF-001")
	assert.Contains(t, html, "Render Corp")
	assert.Contains(t, html, "2026-08-01")
	assert.Contains(t, html, "1200.00")
	assert.Contains(t, html, "Tax (20.00%)")
	// Template escaping keeps markup out of the document
	assert.Contains(t, html, "Advisory &amp; review")
}

package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"juriscloud/models"
)

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(amount float64) string { return fmt.Sprintf("%.2f", amount) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; font-size: 13px; }
h1 { font-size: 22px; margin-bottom: 0; }
.meta { color: #555; margin-bottom: 24px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #ddd; }
th { background: #f4f4f4; }
.amount { text-align: right; }
.totals { margin-top: 16px; width: 40%; margin-left: auto; }
.totals td { border: none; padding: 4px 8px; }
.totals .grand { font-weight: bold; border-top: 2px solid #1a1a1a; }
</style>
</head>
<body>
<h1>Invoice {{.Invoice.InvoiceNumber}}</h1>
<div class="meta">
	<div>Issued: {{date .Invoice.IssueDate}} &middot; Due: {{date .Invoice.DueDate}}</div>
	<div>Status: {{.Invoice.Status}}</div>
	{{if .ClientName}}<div>Billed to: {{.ClientName}}</div>{{end}}
	{{if .CaseNumber}}<div>Case: {{.CaseNumber}}</div>{{end}}
</div>
{{if .Invoice.Lines}}
<table>
	<tr><th>Description</th><th class="amount">Qty</th><th class="amount">Unit</th><th class="amount">Total</th></tr>
	{{range .Invoice.Lines}}
	<tr>
		<td>{{.Description}}</td>
		<td class="amount">{{money .Quantity}}</td>
		<td class="amount">{{money .UnitPrice}}</td>
		<td class="amount">{{money .TotalPrice}}</td>
	</tr>
	{{end}}
</table>
{{end}}
<table class="totals">
	<tr><td>Subtotal</td><td class="amount">{{money .Invoice.Subtotal}}</td></tr>
	<tr><td>Tax ({{money .TaxPercent}}%)</td><td class="amount">{{money .Invoice.TaxAmount}}</td></tr>
	<tr class="grand"><td>Total</td><td class="amount">{{money .Invoice.TotalAmount}}</td></tr>
	{{if gt .Invoice.PaidAmount 0.0}}<tr><td>Paid</td><td class="amount">{{money .Invoice.PaidAmount}}</td></tr>{{end}}
</table>
</body>
</html>`))

// RenderInvoiceHTML produces the printable HTML for an invoice
func RenderInvoiceHTML(invoice *models.Invoice) (string, error) {
	clientName := ""
	if invoice.Client != nil {
		clientName = invoice.Client.DisplayName()
	}
	caseNumber := ""
	if invoice.LegalCase != nil {
		caseNumber = invoice.LegalCase.CaseNumber
	}

	var buf bytes.Buffer
	err := invoiceTemplate.Execute(&buf, map[string]interface{}{
		"Invoice":    invoice,
		"ClientName": clientName,
		"CaseNumber": caseNumber,
		"TaxPercent": invoice.TaxRate * 100,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invoice HTML: %w", err)
	}
	return buf.String(), nil
}

// GenerateInvoicePDF renders an invoice to a PDF document
func GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	html, err := RenderInvoiceHTML(invoice)
	if err != nil {
		return nil, err
	}
	return GeneratePDF(html, DefaultPDFOptions())
}

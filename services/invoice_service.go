package services

import (
	"fmt"
	"math"
	"time"

	"juriscloud/models"

	"gorm.io/gorm"
)

// roundCents rounds a monetary amount to two decimals
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ComputeInvoiceTotals derives tax_amount and total_amount from subtotal and
// tax_rate. Stored totals are always recomputed server-side, never taken from
// input.
func ComputeInvoiceTotals(invoice *models.Invoice) {
	invoice.TaxAmount = roundCents(invoice.Subtotal * invoice.TaxRate)
	invoice.TotalAmount = roundCents(invoice.Subtotal + invoice.TaxAmount)
}

// ComputeLineTotals derives each line's total_price and returns the summed
// subtotal
func ComputeLineTotals(lines []models.InvoiceLine) float64 {
	var subtotal float64
	for i := range lines {
		lines[i].TotalPrice = roundCents(lines[i].Quantity * lines[i].UnitPrice)
		subtotal += lines[i].TotalPrice
	}
	return roundCents(subtotal)
}

// CreateInvoice persists an invoice and its lines in one transaction. When
// lines are present the subtotal is derived from them; totals are always
// recomputed.
func CreateInvoice(db *gorm.DB, invoice *models.Invoice) error {
	if len(invoice.Lines) > 0 {
		invoice.Subtotal = ComputeLineTotals(invoice.Lines)
	}
	ComputeInvoiceTotals(invoice)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return nil
	})
}

// MarkInvoiceSent transitions a draft invoice to sent
func MarkInvoiceSent(db *gorm.DB, invoice *models.Invoice) error {
	if invoice.Status != models.InvoiceStatusDraft {
		return fmt.Errorf("only draft invoices can be sent (current status: %s)", invoice.Status)
	}
	invoice.Status = models.InvoiceStatusSent
	return db.Save(invoice).Error
}

// RecordInvoicePayment marks the invoice paid, stamping the paid amount, date
// and method
func RecordInvoicePayment(db *gorm.DB, invoice *models.Invoice, amount float64, method string) error {
	if invoice.Status == models.InvoiceStatusCancelled {
		return fmt.Errorf("cannot record a payment on a cancelled invoice")
	}
	if amount <= 0 {
		amount = invoice.TotalAmount
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusPaid
	invoice.PaidAmount = roundCents(amount)
	invoice.PaymentDate = &now
	if method != "" {
		invoice.PaymentMethod = &method
	}
	return db.Save(invoice).Error
}

// InvoiceStats aggregates invoice amounts for the dashboard
type InvoiceStats struct {
	PaidRevenue   float64 `json:"paid_revenue"`
	PendingAmount float64 `json:"pending_amount"`
	OverdueAmount float64 `json:"overdue_amount"`
	PaidCount     int64   `json:"paid_count"`
	PendingCount  int64   `json:"pending_count"`
	OverdueCount  int64   `json:"overdue_count"`
}

// GetInvoiceStats computes revenue, outstanding and overdue aggregates for the
// user's invoices
func GetInvoiceStats(db *gorm.DB, userID string, now time.Time) (*InvoiceStats, error) {
	var invoices []models.Invoice
	if err := db.Where("user_id = ?", userID).Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	stats := &InvoiceStats{}
	for i := range invoices {
		inv := &invoices[i]
		switch {
		case inv.Status == models.InvoiceStatusPaid:
			stats.PaidRevenue += inv.TotalAmount
			stats.PaidCount++
		case inv.IsOverdue(now):
			stats.OverdueAmount += inv.TotalAmount
			stats.OverdueCount++
		case inv.Status == models.InvoiceStatusSent:
			stats.PendingAmount += inv.TotalAmount
			stats.PendingCount++
		}
	}

	stats.PaidRevenue = roundCents(stats.PaidRevenue)
	stats.PendingAmount = roundCents(stats.PendingAmount)
	stats.OverdueAmount = roundCents(stats.OverdueAmount)
	return stats, nil
}

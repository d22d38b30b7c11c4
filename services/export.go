package services

import (
	"bytes"
	"fmt"

	"juriscloud/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportInvoices builds an xlsx ledger of the user's invoices, newest first
func ExportInvoices(db *gorm.DB, userID string) (*bytes.Buffer, error) {
	var invoices []models.Invoice
	err := db.Where("user_id = ?", userID).
		Preload("Client").
		Preload("LegalCase").
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice Number", "Client", "Case", "Status", "Issue Date", "Due Date", "Subtotal", "Tax Rate", "Tax Amount", "Total", "Paid"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, inv := range invoices {
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.DisplayName()
		}
		caseNumber := ""
		if inv.LegalCase != nil {
			caseNumber = inv.LegalCase.CaseNumber
		}

		values := []interface{}{
			inv.InvoiceNumber,
			clientName,
			caseNumber,
			inv.Status,
			inv.IssueDate.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			inv.Subtotal,
			inv.TaxRate,
			inv.TaxAmount,
			inv.TotalAmount,
			inv.PaidAmount,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	return buf, nil
}

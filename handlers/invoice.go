package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"juriscloud/db"
	"juriscloud/middleware"
	"juriscloud/models"
	"juriscloud/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// invoiceListOptions configures the shared list controller for invoices
var invoiceListOptions = services.ListOptions{
	SearchColumns: []string{"invoice_number", "notes"},
	Order:         "created_at DESC",
	Preloads:      []string{"Client", "LegalCase"},
}

type invoiceLineRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type invoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	ClientID      string               `json:"client_id"`
	LegalCaseID   *string              `json:"legal_case_id"`
	IssueDate     string               `json:"issue_date"`
	DueDate       string               `json:"due_date"`
	Subtotal      float64              `json:"subtotal"`
	TaxRate       float64              `json:"tax_rate"`
	Notes         *string              `json:"notes"`
	Lines         []invoiceLineRequest `json:"lines"`
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// ListInvoicesHandler returns one page of the user's invoices
func ListInvoicesHandler(c echo.Context) error {
	query := middleware.GetOwnerScopedQuery(c, db.DB)

	result, err := services.FetchPage[models.Invoice](query, getListParams(c), invoiceListOptions)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch invoices")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       result.Items,
		"pagination": result.Meta(),
	})
}

// GetInvoiceHandler returns one invoice with its lines
func GetInvoiceHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// CreateInvoiceHandler creates an invoice for the current user. Totals are
// derived server-side from the lines (or the supplied subtotal) and the tax
// rate.
func CreateInvoiceHandler(c echo.Context) error {
	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user := middleware.GetCurrentUser(c)

	fields := map[string]string{}
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		fields["invoice_number"] = "Invoice number is required"
	}
	if req.ClientID == "" {
		fields["client_id"] = "Client is required"
	} else if !clientBelongsToUser(user.ID, req.ClientID) {
		fields["client_id"] = "Client not found"
	}
	if req.TaxRate < 0 || req.TaxRate > 1 {
		fields["tax_rate"] = "Tax rate must be between 0 and 1"
	}
	if req.DueDate == "" {
		fields["due_date"] = "Due date is required"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	if req.LegalCaseID != nil && *req.LegalCaseID != "" {
		if !caseBelongsToUser(user.ID, *req.LegalCaseID) {
			return validationError(c, map[string]string{"legal_case_id": "Case not found"})
		}
	} else {
		req.LegalCaseID = nil
	}

	dueDate, err := services.ParseDate(req.DueDate)
	if err != nil {
		return validationError(c, map[string]string{"due_date": err.Error()})
	}

	invoice := models.Invoice{
		UserID:        user.ID,
		ClientID:      req.ClientID,
		LegalCaseID:   req.LegalCaseID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		DueDate:       dueDate,
		Subtotal:      req.Subtotal,
		TaxRate:       req.TaxRate,
		Notes:         services.SanitizeTextPtr(req.Notes),
	}

	if req.IssueDate != "" {
		issueDate, err := services.ParseDate(req.IssueDate)
		if err != nil {
			return validationError(c, map[string]string{"issue_date": err.Error()})
		}
		invoice.IssueDate = issueDate
	}

	for _, line := range req.Lines {
		if strings.TrimSpace(line.Description) == "" {
			return validationError(c, map[string]string{"lines": "Every line needs a description"})
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		invoice.Lines = append(invoice.Lines, models.InvoiceLine{
			Description: services.SanitizeText(line.Description),
			Quantity:    quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	if err := services.CreateInvoice(db.DB, &invoice); err != nil {
		if isUniqueConstraintError(err) {
			return validationError(c, map[string]string{"invoice_number": "Invoice number already in use"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create invoice")
	}

	return c.JSON(http.StatusCreated, invoice)
}

// UpdateInvoiceHandler replaces an owned draft invoice's editable fields.
// Sent, paid and cancelled invoices are immutable. When the request carries
// lines they replace the stored ones; either way the subtotal is derived from
// the lines when any exist, so client-supplied amounts are never trusted.
func UpdateInvoiceHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, false)
	if err != nil {
		return err
	}

	if invoice.Status != models.InvoiceStatusDraft {
		return echo.NewHTTPError(http.StatusConflict,
			fmt.Sprintf("only draft invoices can be edited (current status: %s)", invoice.Status))
	}

	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.InvoiceNumber) == "" {
		fields["invoice_number"] = "Invoice number is required"
	}
	if req.TaxRate < 0 || req.TaxRate > 1 {
		fields["tax_rate"] = "Tax rate must be between 0 and 1"
	}
	if req.DueDate == "" {
		fields["due_date"] = "Due date is required"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	dueDate, err := services.ParseDate(req.DueDate)
	if err != nil {
		return validationError(c, map[string]string{"due_date": err.Error()})
	}
	invoice.DueDate = dueDate
	if req.IssueDate != "" {
		issueDate, err := services.ParseDate(req.IssueDate)
		if err != nil {
			return validationError(c, map[string]string{"issue_date": err.Error()})
		}
		invoice.IssueDate = issueDate
	}

	invoice.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	invoice.TaxRate = req.TaxRate
	invoice.Notes = services.SanitizeTextPtr(req.Notes)

	if len(req.Lines) > 0 {
		lines := make([]models.InvoiceLine, 0, len(req.Lines))
		for _, line := range req.Lines {
			if strings.TrimSpace(line.Description) == "" {
				return validationError(c, map[string]string{"lines": "Every line needs a description"})
			}
			quantity := line.Quantity
			if quantity == 0 {
				quantity = 1
			}
			lines = append(lines, models.InvoiceLine{
				InvoiceID:   invoice.ID,
				Description: services.SanitizeText(line.Description),
				Quantity:    quantity,
				UnitPrice:   line.UnitPrice,
			})
		}
		invoice.Subtotal = services.ComputeLineTotals(lines)
		services.ComputeInvoiceTotals(invoice)

		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceLine{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
			return tx.Save(invoice).Error
		})
		if err != nil {
			if isUniqueConstraintError(err) {
				return validationError(c, map[string]string{"invoice_number": "Invoice number already in use"})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update invoice")
		}
		invoice.Lines = lines
		return c.JSON(http.StatusOK, invoice)
	}

	var existing []models.InvoiceLine
	if err := db.DB.Where("invoice_id = ?", invoice.ID).Find(&existing).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update invoice")
	}
	if len(existing) > 0 {
		invoice.Subtotal = services.ComputeLineTotals(existing)
	} else {
		invoice.Subtotal = req.Subtotal
	}
	services.ComputeInvoiceTotals(invoice)

	if err := db.DB.Save(invoice).Error; err != nil {
		if isUniqueConstraintError(err) {
			return validationError(c, map[string]string{"invoice_number": "Invoice number already in use"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update invoice")
	}

	return c.JSON(http.StatusOK, invoice)
}

// SendInvoiceHandler transitions a draft invoice to sent
func SendInvoiceHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, false)
	if err != nil {
		return err
	}

	if err := services.MarkInvoiceSent(db.DB, invoice); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, invoice)
}

// PayInvoiceHandler records a payment against an owned invoice
func PayInvoiceHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, false)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.RecordInvoicePayment(db.DB, invoice, req.Amount, req.Method); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoiceHandler deletes an owned invoice and its lines
func DeleteInvoiceHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, false)
	if err != nil {
		return err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(invoice).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete invoice")
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportInvoicesHandler streams the user's invoices as an xlsx workbook
func ExportInvoicesHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	buf, err := services.ExportInvoices(db.DB, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export invoices")
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// InvoicePDFHandler renders an owned invoice as a PDF document
func InvoicePDFHandler(c echo.Context) error {
	invoice, err := findOwnedInvoice(c, true)
	if err != nil {
		return err
	}

	pdf, err := services.GenerateInvoicePDF(invoice)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, services.SanitizeFilename(invoice.InvoiceNumber)))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// findOwnedInvoice loads the invoice in :id scoped to the current user
func findOwnedInvoice(c echo.Context, withRelations bool) (*models.Invoice, error) {
	query := middleware.GetOwnerScopedQuery(c, db.DB)
	if withRelations {
		query = query.Preload("Client").Preload("LegalCase").Preload("Lines")
	}

	var invoice models.Invoice
	if err := query.First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Invoice not found")
	}
	return &invoice, nil
}

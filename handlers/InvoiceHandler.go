package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ifex/models"
	"ifex/repository"
	"ifex/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateInvoice creates an invoice with its items in one transaction. The
// invoice may be raised from a quotation, for an explicit customer, or both;
// at least one of the two must be given.
// @Summary Create invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body models.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} models.Invoice
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/invoice_create [post]
func CreateInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.QuotationID == nil && req.CustomerID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer or quotation_id is required"})
			return
		}
		invoiceDate := time.Now()
		if req.InvoiceDate != "" {
			parsed, err := time.Parse("2006-01-02", req.InvoiceDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invoice_date must be YYYY-MM-DD"})
				return
			}
			invoiceDate = parsed
		}
		items, err := parseItemRows(req.DocumentItemsRequest)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add at least one item"})
			return
		}
		tax, err := resolveTaxPercent(req.Tax)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		scheme := repository.InvoiceSchemeFromEnv()
		var invoice models.Invoice
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if req.QuotationID != nil {
				if err := tx.First(&models.Quotation{}, "id = ?", *req.QuotationID).Error; err != nil {
					return fmt.Errorf("quotation: %w", err)
				}
			}
			if req.CustomerID != nil {
				if err := tx.First(&models.Customer{}, "id = ?", *req.CustomerID).Error; err != nil {
					return fmt.Errorf("customer: %w", err)
				}
			}
			number, err := repository.NextInvoiceNumber(tx, scheme, invoiceDate)
			if err != nil {
				return err
			}
			subtotal, grandTotal := documentTotals(items, tax)
			invoice = models.Invoice{
				InvoiceNumber: number,
				QuotationID:   req.QuotationID,
				CustomerID:    req.CustomerID,
				InvoiceDate:   invoiceDate,
				TotalAmount:   subtotal,
				Tax:           tax,
				GrandTotal:    grandTotal,
			}
			if err := tx.Create(&invoice).Error; err != nil {
				return err
			}
			for _, it := range items {
				ii := models.InvoiceItem{
					InvoiceID: invoice.ID,
					ItemName:  it.Name,
					Quantity:  it.Quantity,
					Price:     it.Price,
				}
				if err := tx.Create(&ii).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referenced customer or quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
			return
		}

		LogActivity(db, "invoice_created", "invoices", fmt.Sprintf("Invoice %s created", invoice.InvoiceNumber))
		c.JSON(http.StatusCreated, invoice)
	}
}

// GetAllInvoices returns the invoice register for one month together with
// that month's revenue total. ?month=YYYY-MM; defaults to the current month.
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} models.InvoiceListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/invoices [get]
func GetAllInvoices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.DefaultQuery("month", time.Now().Format("2006-01"))
		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		monthEnd := monthStart.AddDate(0, 1, 0)

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var invoices []models.Invoice
		err = db.WithContext(ctx).Preload("Customer").Preload("Quotation").Preload("Quotation.Customer").
			Where("invoice_date >= ? AND invoice_date < ?", monthStart, monthEnd).
			Order("id DESC").Find(&invoices).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
			return
		}

		var totalRevenue float64
		for _, inv := range invoices {
			totalRevenue += inv.GrandTotal
		}
		c.JSON(http.StatusOK, models.InvoiceListResponse{
			Invoices:     invoices,
			TotalRevenue: totalRevenue,
			Month:        month,
		})
	}
}

// GetInvoice returns one invoice with per-item line totals and the resolved
// customer name.
// @Summary Fetch invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/invoice_fetch/{id} [get]
func GetInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		err := db.Preload("Customer").Preload("Quotation").Preload("Quotation.Customer").Preload("Items").
			First(&invoice, "id = ?", c.Param("id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
			return
		}

		customerName := "N/A"
		if resolved := invoice.ResolveCustomer(); resolved != nil {
			customerName = resolved.Name
		}
		resp := models.InvoiceDetailResponse{Invoice: invoice, CustomerName: customerName}
		for _, it := range invoice.Items {
			resp.ItemsWithTotals = append(resp.ItemsWithTotals, models.InvoiceItemResponse{
				InvoiceItem: it,
				LineTotal:   it.LineTotal(),
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateInvoice replaces an invoice's fields and items and recomputes the
// cached totals, all in one transaction. The invoice number never changes.
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param invoice body models.CreateInvoiceRequest true "Invoice"
// @Success 200 {object} models.Invoice
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/invoice_update/{id} [put]
func UpdateInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
			return
		}

		var req models.CreateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		items, err := parseItemRows(req.DocumentItemsRequest)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add at least one item"})
			return
		}
		if req.InvoiceDate != "" {
			parsed, err := time.Parse("2006-01-02", req.InvoiceDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invoice_date must be YYYY-MM-DD"})
				return
			}
			invoice.InvoiceDate = parsed
		}
		if req.QuotationID != nil {
			invoice.QuotationID = req.QuotationID
		}
		if req.CustomerID != nil {
			invoice.CustomerID = req.CustomerID
		}
		if req.Tax != nil {
			tax, err := resolveTaxPercent(req.Tax)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoice.Tax = tax
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if invoice.QuotationID != nil {
				if err := tx.First(&models.Quotation{}, "id = ?", *invoice.QuotationID).Error; err != nil {
					return err
				}
			}
			if invoice.CustomerID != nil {
				if err := tx.First(&models.Customer{}, "id = ?", *invoice.CustomerID).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			for _, it := range items {
				ii := models.InvoiceItem{
					InvoiceID: invoice.ID,
					ItemName:  it.Name,
					Quantity:  it.Quantity,
					Price:     it.Price,
				}
				if err := tx.Create(&ii).Error; err != nil {
					return err
				}
			}
			invoice.TotalAmount, invoice.GrandTotal = documentTotals(items, invoice.Tax)
			return tx.Save(&invoice).Error
		})
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Referenced customer or quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
			return
		}

		LogActivity(db, "invoice_updated", "invoices", fmt.Sprintf("Invoice %s updated", invoice.InvoiceNumber))
		c.JSON(http.StatusOK, invoice)
	}
}

// DeleteInvoice deletes an invoice and its items.
// @Summary Delete invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/invoice_delete/{id} [delete]
func DeleteInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.First(&invoice, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice"})
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&invoice).Error
		})
		if txErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
			return
		}

		LogActivity(db, "invoice_deleted", "invoices", fmt.Sprintf("Invoice %s deleted", invoice.InvoiceNumber))
		c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
	}
}

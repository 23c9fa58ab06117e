package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"ifex/models"
	"ifex/pdf"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// newPdfBuilder builds a fresh document builder per request; the measurer
// holds a gofpdf instance that is not safe to share.
func newPdfBuilder() *pdf.Builder {
	return pdf.NewBuilder(pdf.DefaultResolver(), pdf.VariantFromEnv(os.Getenv("PDF_LAYOUT_VARIANT")))
}

func quotationDocument(q models.Quotation) pdf.QuotationDocument {
	doc := pdf.QuotationDocument{
		Number:       q.QuotationNumber,
		Date:         q.CreatedAt,
		DeliveryDate: q.ExpectedDeliveryDate,
		PaymentTerm:  q.PaymentTerm,
		TaxPercent:   q.Tax,
		Customer: pdf.DocCustomer{
			Name:    q.Customer.Name,
			Address: q.Customer.Address,
			City:    q.Customer.City,
		},
	}
	for _, it := range q.Items {
		doc.Items = append(doc.Items, pdf.DocItem{Name: it.ItemName, Quantity: it.Quantity, Price: it.Price})
	}
	return doc
}

func invoiceDocument(inv models.Invoice) pdf.InvoiceDocument {
	doc := pdf.InvoiceDocument{
		Number:     inv.InvoiceNumber,
		Date:       inv.InvoiceDate,
		TaxPercent: inv.Tax,
	}
	if resolved := inv.ResolveCustomer(); resolved != nil {
		doc.Customer = &pdf.DocCustomer{
			Name:    resolved.Name,
			Address: resolved.Address,
			City:    resolved.City,
		}
	}
	if inv.Quotation != nil && inv.Quotation.ID != 0 {
		created := inv.Quotation.CreatedAt
		delivery := inv.Quotation.ExpectedDeliveryDate
		doc.QuotationDate = &created
		doc.DeliveryDate = &delivery
	}
	for _, it := range inv.Items {
		doc.Items = append(doc.Items, pdf.DocItem{Name: it.ItemName, Quantity: it.Quantity, Price: it.Price})
	}
	return doc
}

func servePdf(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GenerateQuotationPDF renders a quotation document as a PDF download.
// @Summary Download quotation PDF
// @Tags PDF
// @Produce application/pdf
// @Param id path int true "Quotation ID"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotation_pdf/{id} [get]
func GenerateQuotationPDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var quotation models.Quotation
		err := db.Preload("Customer").Preload("Items").First(&quotation, "id = ?", c.Param("id")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotation"})
			return
		}

		data, filename, err := newPdfBuilder().BuildQuotation(quotationDocument(quotation))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		servePdf(c, data, filename)
	}
}

// GenerateInvoicePDF renders an invoice document as a PDF download.
// @Summary Download invoice PDF
// @Tags PDF
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/invoice_pdf/{id} [get]
func GenerateInvoicePDF(db *gorm.DB) gin.HandlerFunc {
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

		data, filename, err := newPdfBuilder().BuildInvoice(invoiceDocument(invoice))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		servePdf(c, data, filename)
	}
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"ifex/models"
	"ifex/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportInvoicesXLSX streams the invoice register as an XLSX workbook.
// @Summary Export invoices as XLSX
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX workbook"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export_invoices_xlsx [get]
func ExportInvoicesXLSX(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var invoices []models.Invoice
		err := db.WithContext(ctx).Preload("Customer").Preload("Quotation").Preload("Quotation.Customer").
			Order("id ASC").Find(&invoices).Error
		if err != nil {
			utils.ErrorResponse(c, "Failed to fetch invoices", http.StatusInternalServerError)
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Invoices"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Invoice Number", "Date", "Customer", "Quotation", "Net Amount", "Tax %", "Grand Total"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, inv := range invoices {
			customerName := "N/A"
			if resolved := inv.ResolveCustomer(); resolved != nil {
				customerName = resolved.Name
			}
			quotationNumber := ""
			if inv.Quotation != nil {
				quotationNumber = inv.Quotation.QuotationNumber
			}
			values := []interface{}{
				inv.InvoiceNumber,
				inv.InvoiceDate.Format("02/01/2006"),
				customerName,
				quotationNumber,
				inv.TotalAmount,
				inv.Tax,
				inv.GrandTotal,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s", filename))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing XLSX file"})
			return
		}
	}
}

// ExportCustomersCSV streams every customer as a CSV file.
// @Summary Export customers as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file "CSV file"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export_customers_csv [get]
func ExportCustomersCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var customers []models.Customer
		if err := db.WithContext(ctx).Order("id ASC").Find(&customers).Error; err != nil {
			utils.ErrorResponse(c, "Failed to fetch customers", http.StatusInternalServerError)
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename=customers_export.csv")

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		header := []string{"Name", "Address", "City", "Phone", "CreatedAt"}
		if err := writer.Write(header); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
			return
		}
		for _, cust := range customers {
			row := []string{cust.Name, cust.Address, cust.City, cust.Phone, cust.CreatedAt.Format("2006-01-02")}
			if err := writer.Write(row); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
				return
			}
		}
	}
}

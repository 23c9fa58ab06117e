package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ifex/models"
	"ifex/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:api_" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/customer_create", CreateCustomer(db))
		api.GET("/customers", GetAllCustomers(db))
		api.GET("/customer_fetch/:id", GetCustomer(db))
		api.PUT("/customer_update/:id", UpdateCustomer(db))
		api.DELETE("/customer_delete/:id", DeleteCustomer(db))

		api.POST("/quotation_create", CreateQuotation(db))
		api.GET("/quotations", GetAllQuotations(db))
		api.GET("/quotation_fetch/:id", GetQuotation(db))
		api.PUT("/quotation_update/:id", UpdateQuotation(db))
		api.DELETE("/quotation_delete/:id", DeleteQuotation(db))
		api.GET("/quotation_pdf/:id", GenerateQuotationPDF(db))

		api.POST("/invoice_create", CreateInvoice(db))
		api.GET("/invoices", GetAllInvoices(db))
		api.GET("/invoice_fetch/:id", GetInvoice(db))
		api.PUT("/invoice_update/:id", UpdateInvoice(db))
		api.DELETE("/invoice_delete/:id", DeleteInvoice(db))
		api.GET("/invoice_pdf/:id", GenerateInvoicePDF(db))

		api.GET("/export_invoices_xlsx", ExportInvoicesXLSX(db))
		api.GET("/export_customers_csv", ExportCustomersCSV(db))
		api.GET("/activity_logs", GetActivityLogs(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestCustomer(t *testing.T, r *gin.Engine, name string) models.Customer {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/customer_create", gin.H{
		"name": name, "address": "Deira, Dubai", "city": "Dubai", "phone": "0501234567",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: status %d, body %s", w.Code, w.Body.String())
	}
	var customer models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &customer); err != nil {
		t.Fatalf("decode customer: %v", err)
	}
	return customer
}

func quotationBody(customerID uint) gin.H {
	return gin.H{
		"customer":               customerID,
		"expected_delivery_date": "2025-06-13",
		"payment_term":           "COD",
		"item_name":              []string{"Business Card Printing"},
		"quantity":               []string{"500"},
		"price":                  []string{"0.24"},
	}
}

func TestCreateCustomerRequiresName(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	w := doJSON(t, r, http.MethodPost, "/api/customer_create", gin.H{"name": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/customer_fetch/%d", customer.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/customer_update/%d", customer.ID), gin.H{
		"name": "Alfan Emirates L.L.C", "city": "Sharjah",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", w.Code, w.Body.String())
	}
	var updated models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Name != "Alfan Emirates L.L.C" || updated.City != "Sharjah" {
		t.Errorf("update not applied: %+v", updated)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/customer_delete/%d", customer.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/customer_fetch/%d", customer.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("fetch after delete: status %d, want 404", w.Code)
	}
}

func TestDeleteCustomerWithInvoicesRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Arif Ahmed")

	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Roll Up Banner"},
		"quantity":     []string{"2"},
		"price":        []string{"85"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/customer_delete/%d", customer.ID), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("delete: status %d, want 409", w.Code)
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("customer row count = %d, want 1", count)
	}
}

func TestCreateQuotationComputesTotals(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quotation: status %d, body %s", w.Code, w.Body.String())
	}
	var q models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.QuotationNumber != "IF2001" {
		t.Errorf("quotation number = %q, want IF2001", q.QuotationNumber)
	}
	if q.TotalPrice != 120 || q.GrandTotal != 126 {
		t.Errorf("totals = %v / %v, want 120 / 126", q.TotalPrice, q.GrandTotal)
	}
	if q.Tax != 5 {
		t.Errorf("default tax = %v, want 5", q.Tax)
	}
}

func TestCreateQuotationUnknownCustomer(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(999))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestMismatchedItemArraysRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	body := quotationBody(customer.ID)
	body["item_name"] = []string{"Business Card Printing", "Roll Up Banner"}
	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var quotations, items int64
	db.Model(&models.Quotation{}).Count(&quotations)
	db.Model(&models.QuotationItem{}).Count(&items)
	if quotations != 0 || items != 0 {
		t.Fatalf("persisted %d quotations and %d items, want none", quotations, items)
	}
}

func TestQuotationTaxOutOfRangeRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	for _, tax := range []float64{-50, 101} {
		body := quotationBody(customer.ID)
		body["tax"] = tax
		w := doJSON(t, r, http.MethodPost, "/api/quotation_create", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("tax %v: status = %d, want 400", tax, w.Code)
		}
	}
	var count int64
	db.Model(&models.Quotation{}).Count(&count)
	if count != 0 {
		t.Fatalf("persisted %d quotations, want none", count)
	}

	// A valid quotation cannot be pushed out of range on update either
	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quotation: status %d", w.Code)
	}
	var q models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	body := quotationBody(customer.ID)
	body["tax"] = -5.0
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/quotation_update/%d", q.ID), body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("update: status = %d, want 400", w.Code)
	}
	var kept models.Quotation
	if err := db.First(&kept, "id = ?", q.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if kept.Tax != 5 || kept.GrandTotal != 126 {
		t.Errorf("quotation changed by rejected update: tax %v, grand total %v", kept.Tax, kept.GrandTotal)
	}
}

func TestInvoiceTaxOutOfRangeRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"tax":          -50.0,
		"item_name":    []string{"Business Card Printing"},
		"quantity":     []string{"500"},
		"price":        []string{"0.24"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("persisted %d invoices, want none", count)
	}
}

func TestCreateInvoiceWithoutItemsRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{},
		"quantity":     []string{},
		"price":        []string{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("persisted %d invoices, want none", count)
	}

	// Update cannot strip an invoice down to no items either
	w = doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Roll Up Banner"},
		"quantity":     []string{"1"},
		"price":        []string{"85"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d, body %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/invoice_update/%d", inv.ID), gin.H{
		"item_name": []string{},
		"quantity":  []string{},
		"price":     []string{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("update: status = %d, want 400", w.Code)
	}
	var items int64
	db.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&items)
	if items != 1 {
		t.Errorf("invoice item count = %d, want 1", items)
	}
}

func TestDeleteQuotationCascadesItemsAndKeepsInvoice(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quotation: status %d", w.Code)
	}
	var q models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"quotation_id": q.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Business Card Printing"},
		"quantity":     []string{"500"},
		"price":        []string{"0.24"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d, body %s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/quotation_delete/%d", q.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete quotation: status %d, body %s", w.Code, w.Body.String())
	}

	var items int64
	db.Model(&models.QuotationItem{}).Where("quotation_id = ?", q.ID).Count(&items)
	if items != 0 {
		t.Errorf("quotation items survived delete: %d", items)
	}
	var kept models.Invoice
	if err := db.First(&kept, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("invoice gone after quotation delete: %v", err)
	}
	if kept.QuotationID != nil {
		t.Errorf("invoice quotation reference not cleared: %v", *kept.QuotationID)
	}
}

func TestCreateInvoiceRequiresReference(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Roll Up Banner"},
		"quantity":     []string{"1"},
		"price":        []string{"85"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestInvoiceNumberSchemes(t *testing.T) {
	t.Run("yearly default", func(t *testing.T) {
		t.Setenv("INVOICE_NUMBER_SCHEME", "")
		r := setupRouter(setupTestDB(t))
		customer := createTestCustomer(t, r, "Alfan Emirates LLC")
		w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
			"customer":     customer.ID,
			"invoice_date": "2025-05-26",
			"item_name":    []string{"Roll Up Banner"},
			"quantity":     []string{"1"},
			"price":        []string{"85"},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status %d, body %s", w.Code, w.Body.String())
		}
		var inv models.Invoice
		if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if inv.InvoiceNumber != "INV-2025-00001" {
			t.Errorf("number = %q, want INV-2025-00001", inv.InvoiceNumber)
		}
	})

	t.Run("legacy", func(t *testing.T) {
		t.Setenv("INVOICE_NUMBER_SCHEME", "legacy")
		r := setupRouter(setupTestDB(t))
		customer := createTestCustomer(t, r, "Alfan Emirates LLC")
		w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
			"customer":     customer.ID,
			"invoice_date": "2025-05-26",
			"item_name":    []string{"Roll Up Banner"},
			"quantity":     []string{"1"},
			"price":        []string{"85"},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status %d, body %s", w.Code, w.Body.String())
		}
		var inv models.Invoice
		if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if inv.InvoiceNumber != "INV2001" {
			t.Errorf("number = %q, want INV2001", inv.InvoiceNumber)
		}
	})
}

func TestInvoiceMonthFilterAndRevenue(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	for _, date := range []string{"2025-05-05", "2025-05-26", "2025-06-02"} {
		w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
			"customer":     customer.ID,
			"invoice_date": date,
			"item_name":    []string{"Business Card Printing"},
			"quantity":     []string{"500"},
			"price":        []string{"0.24"},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create invoice %s: status %d, body %s", date, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/invoices?month=2025-05", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var resp models.InvoiceListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Invoices) != 2 {
		t.Fatalf("got %d invoices for May, want 2", len(resp.Invoices))
	}
	if resp.TotalRevenue != 252 {
		t.Errorf("total revenue = %v, want 252", resp.TotalRevenue)
	}
	if resp.Month != "2025-05" {
		t.Errorf("month = %q", resp.Month)
	}

	w = doJSON(t, r, http.MethodGet, "/api/invoices?month=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad month: status %d, want 400", w.Code)
	}
}

func TestInvoiceDetailResolvesQuotationCustomer(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quotation: status %d", w.Code)
	}
	var q models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Invoice raised from the quotation only; the customer comes through it
	w = doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"quotation_id": q.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Business Card Printing"},
		"quantity":     []string{"500"},
		"price":        []string{"0.24"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d", w.Code)
	}
	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/invoice_fetch/%d", inv.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch: status %d", w.Code)
	}
	var detail models.InvoiceDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.CustomerName != "Alfan Emirates LLC" {
		t.Errorf("customer name = %q, want the quotation's customer", detail.CustomerName)
	}
	if len(detail.ItemsWithTotals) != 1 || detail.ItemsWithTotals[0].LineTotal != 120 {
		t.Errorf("items with totals = %+v", detail.ItemsWithTotals)
	}
}

func TestQuotationPDFDownload(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/quotation_create", quotationBody(customer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quotation: status %d", w.Code)
	}
	var q models.Quotation
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/quotation_pdf/%d", q.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: status %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, q.QuotationNumber) {
		t.Errorf("content disposition = %q, want filename with %s", cd, q.QuotationNumber)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body is not a PDF")
	}

	w = doJSON(t, r, http.MethodGet, "/api/quotation_pdf/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing quotation: status %d, want 404", w.Code)
	}
}

func TestInvoicePDFDownload(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Roll Up Banner"},
		"quantity":     []string{"2"},
		"price":        []string{"85"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d", w.Code)
	}
	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/invoice_pdf/%d", inv.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body is not a PDF")
	}
}

func TestExportCustomersCSV(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodGet, "/api/export_customers_csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Name,Address,City,Phone,CreatedAt") {
		t.Errorf("missing CSV header: %q", body)
	}
	if !strings.Contains(body, "Alfan Emirates LLC") {
		t.Errorf("missing customer row: %q", body)
	}
}

func TestExportInvoicesXLSX(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	customer := createTestCustomer(t, r, "Alfan Emirates LLC")
	w := doJSON(t, r, http.MethodPost, "/api/invoice_create", gin.H{
		"customer":     customer.ID,
		"invoice_date": "2025-05-26",
		"item_name":    []string{"Roll Up Banner"},
		"quantity":     []string{"1"},
		"price":        []string{"85"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/export_invoices_xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	// XLSX is a zip archive
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Errorf("body is not an XLSX archive")
	}
}

func TestActivityLogsRecorded(t *testing.T) {
	r := setupRouter(setupTestDB(t))
	createTestCustomer(t, r, "Alfan Emirates LLC")

	w := doJSON(t, r, http.MethodGet, "/api/activity_logs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Data []models.ActivityLog `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) == 0 {
		t.Fatal("no activity logged for customer creation")
	}
	if resp.Data[0].EventName != "customer_created" {
		t.Errorf("event = %q", resp.Data[0].EventName)
	}
}

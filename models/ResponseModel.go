package models

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success payload
type MessageResponse struct {
	Message string `json:"message"`
}

// DocumentItemsRequest carries the parallel item arrays as submitted by the
// quotation/invoice forms. Quantities and prices arrive as strings so that
// malformed numerics surface as validation errors, not bind failures. All
// three slices must have the same length.
type DocumentItemsRequest struct {
	ItemNames  []string `json:"item_name"`
	Quantities []string `json:"quantity"`
	Prices     []string `json:"price"`
}

// CreateQuotationRequest is the body for quotation create/update
type CreateQuotationRequest struct {
	CustomerID           uint     `json:"customer"`
	ExpectedDeliveryDate string   `json:"expected_delivery_date"`
	PaymentTerm          string   `json:"payment_term"`
	Tax                  *float64 `json:"tax,omitempty"`
	DocumentItemsRequest
}

// CreateInvoiceRequest is the body for invoice create/update
type CreateInvoiceRequest struct {
	QuotationID *uint    `json:"quotation_id,omitempty"`
	CustomerID  *uint    `json:"customer,omitempty"`
	InvoiceDate string   `json:"invoice_date"`
	Tax         *float64 `json:"tax,omitempty"`
	DocumentItemsRequest
}

// CustomerRequest is the body for customer create/update
type CustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// QuotationItemResponse is a quotation item with its computed line total
type QuotationItemResponse struct {
	QuotationItem
	LineTotal float64 `json:"line_total"`
}

// QuotationDetailResponse is the quotation detail payload
type QuotationDetailResponse struct {
	Quotation
	ItemsWithTotals []QuotationItemResponse `json:"items_with_totals"`
}

// InvoiceItemResponse is an invoice item with its computed line total
type InvoiceItemResponse struct {
	InvoiceItem
	LineTotal float64 `json:"line_total"`
}

// InvoiceDetailResponse is the invoice detail payload
type InvoiceDetailResponse struct {
	Invoice
	ItemsWithTotals []InvoiceItemResponse `json:"items_with_totals"`
	CustomerName    string                `json:"customer_name"`
}

// InvoiceListResponse is the invoice register payload with the month's
// revenue aggregate
type InvoiceListResponse struct {
	Invoices     []Invoice `json:"invoices"`
	TotalRevenue float64   `json:"total_revenue"`
	Month        string    `json:"month"`
}

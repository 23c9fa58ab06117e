package models

import (
	"time"
)

// Customer represents the customer table with GORM tags
type Customer struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Address   string    `gorm:"column:address;type:text" json:"address"`
	City      string    `gorm:"column:city" json:"city"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customer"
}

// Quotation represents the quotation table with GORM tags.
// TotalPrice and GrandTotal are derived values cached for read efficiency;
// they must be recomputed inside the same transaction as any item mutation.
type Quotation struct {
	ID                   uint            `gorm:"primaryKey;column:id" json:"id"`
	QuotationNumber      string          `gorm:"column:quotation_number;uniqueIndex;not null" json:"quotation_number"`
	CustomerID           uint            `gorm:"column:customer_id;not null" json:"customer_id"`
	Customer             Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	ExpectedDeliveryDate time.Time       `gorm:"column:expected_delivery_date;not null" json:"expected_delivery_date"`
	PaymentTerm          string          `gorm:"column:payment_term;type:text" json:"payment_term"`
	CreatedAt            time.Time       `gorm:"column:created_at;not null" json:"created_at"`
	Tax                  float64         `gorm:"column:tax;default:0" json:"tax"`
	TotalPrice           float64         `gorm:"column:total_price;not null" json:"total_price"`
	GrandTotal           float64         `gorm:"column:grand_total;not null" json:"grand_total"`
	Items                []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Quotation
func (Quotation) TableName() string {
	return "quotation"
}

// QuotationItem represents the quotation_item table with GORM tags
type QuotationItem struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	QuotationID uint    `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	ItemName    string  `gorm:"column:item_name;not null" json:"item_name"`
	Quantity    int     `gorm:"column:quantity;not null" json:"quantity"`
	Price       float64 `gorm:"column:price;default:0" json:"price"`
}

// TableName specifies the table name for QuotationItem
func (QuotationItem) TableName() string {
	return "quotation_item"
}

// LineTotal returns quantity x unit price. Not stored.
func (qi QuotationItem) LineTotal() float64 {
	return float64(qi.Quantity) * qi.Price
}

// Invoice represents the invoice table with GORM tags.
// QuotationID is nullable: deleting a quotation nulls the reference instead
// of cascading into the invoice. CustomerID is delete-restricted.
type Invoice struct {
	ID            uint          `gorm:"primaryKey;column:id" json:"id"`
	InvoiceNumber string        `gorm:"column:invoice_number;uniqueIndex;not null" json:"invoice_number"`
	QuotationID   *uint         `gorm:"column:quotation_id;index" json:"quotation_id,omitempty"`
	Quotation     *Quotation    `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
	CustomerID    *uint         `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	Customer      *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	InvoiceDate   time.Time     `gorm:"column:invoice_date" json:"invoice_date"`
	TotalAmount   float64       `gorm:"column:total_amount;not null" json:"total_amount"`
	Tax           float64       `gorm:"column:tax;default:5" json:"tax"`
	GrandTotal    float64       `gorm:"column:grand_total;not null" json:"grand_total"`
	CreatedAt     time.Time     `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;not null" json:"updated_at"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoice"
}

// ResolveCustomer returns the invoice's effective customer: the explicit one
// if set, else the originating quotation's customer, else nil.
func (inv *Invoice) ResolveCustomer() *Customer {
	if inv.Customer != nil && inv.Customer.ID != 0 {
		return inv.Customer
	}
	if inv.Quotation != nil && inv.Quotation.Customer.ID != 0 {
		return &inv.Quotation.Customer
	}
	return nil
}

// InvoiceItem represents the invoice_item table with GORM tags
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey;column:id" json:"id"`
	InvoiceID uint    `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	ItemName  string  `gorm:"column:item_name;not null" json:"item_name"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;default:0" json:"price"`
}

// TableName specifies the table name for InvoiceItem
func (InvoiceItem) TableName() string {
	return "invoice_item"
}

// LineTotal returns quantity x unit price. Not stored.
func (ii InvoiceItem) LineTotal() float64 {
	return float64(ii.Quantity) * ii.Price
}

// DocumentSequence represents the document_sequence table with GORM tags.
// One row per (name, year); year is zero for non-yearly sequences. Numbers
// are handed out with a transactional increment-and-read so concurrent
// creations can never observe the same value.
type DocumentSequence struct {
	ID    uint   `gorm:"primaryKey;column:id" json:"id"`
	Name  string `gorm:"column:name;not null;uniqueIndex:idx_sequence_name_year" json:"name"`
	Year  int    `gorm:"column:year;not null;default:0;uniqueIndex:idx_sequence_name_year" json:"year"`
	Value int    `gorm:"column:value;not null" json:"value"`
}

// TableName specifies the table name for DocumentSequence
func (DocumentSequence) TableName() string {
	return "document_sequence"
}

// ActivityLog represents the activity_log table with GORM tags
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	EventID      string    `gorm:"column:event_id;uniqueIndex;not null" json:"event_id"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	EventName    string    `gorm:"column:event_name;not null" json:"event_name"`
	EventContext string    `gorm:"column:event_context;not null" json:"event_context"`
	Description  string    `gorm:"column:description;not null" json:"description"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_log"
}

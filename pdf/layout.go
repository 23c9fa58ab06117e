package pdf

import (
	"time"
)

// A4 page size in points
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

// ItemsPerPage is the fixed item capacity of one page in the paginated
// layouts. Capacity is by item count, not by remaining vertical space: a
// page full of tall wrapped rows can visually overflow its area. That is a
// known approximation carried over from the original layout, not a bug to
// fix with reflow.
const ItemsPerPage = 11

// Fixed layout geometry shared by the document variants
const (
	marginX = 50.0

	tableWidth = PageWidth - 2*marginX

	headerBannerWidth  = 270.0
	headerBannerHeight = 100.0

	infoBoxWidth  = 250.0
	infoBoxHeight = 100.0

	execBarHeight   = 22.0
	execBarRowH     = 18.0
	totalsBoxWidth  = 160.0
	totalsBoxHeight = 18.0
	totalsX         = PageWidth - 210.0

	footerBandHeight = 80.0

	quotationTableTopY = PageHeight - 380.0
	invoiceTableTopY   = PageHeight - 300.0
	tableHeaderHeight  = 25.0
)

// Palette
var (
	colorBlack      = Color{0, 0, 0}
	colorWhite      = Color{255, 255, 255}
	colorGray       = Color{128, 128, 128}
	colorMidGray    = Color{153, 153, 153}
	colorDarkGray   = Color{77, 77, 77}
	colorLightGray  = Color{242, 242, 242}
	colorPaleGray   = Color{240, 240, 240}
	colorSilverGray = Color{245, 245, 247}
	colorNavyBlue   = Color{10, 42, 82}
	colorSlateBlue  = Color{47, 62, 91}
	colorLightBlue  = Color{135, 207, 235}
	colorSteelBlue  = Color{75, 123, 167}
	colorDeepBlue   = Color{0, 128, 199}
	colorRoyalBlue  = Color{64, 105, 224}
	colorAltRowBlue = Color{242, 250, 255}
	colorFooterBlue = Color{59, 94, 145}
)

// CompanyInfo is the fixed letterhead content printed on every document
type CompanyInfo struct {
	Name       string
	ShortName  string
	Tagline    string
	Phone      string
	AltPhone   string
	Address    string
	City       string
	Email      string
	SalesEmail string
	Website    string
	TRN        string
	BankName   string
	BankBranch string
	SwiftCode  string
	IBAN       string
	Salesman   string
}

// DefaultCompany returns the IFEX letterhead
func DefaultCompany() CompanyInfo {
	return CompanyInfo{
		Name:       "IFEX PR AND ADVERTISING EST",
		ShortName:  "ifex",
		Tagline:    "PR AND ADVERTISING EST",
		Phone:      "055 831 7409",
		AltPhone:   "050 525 3616",
		Address:    "Ind. Area 3, Al Qusais, Dubai",
		City:       "Dubai UAE",
		Email:      "info@ifexprint.com",
		SalesEmail: "sales@ifexprint.com",
		Website:    "www.ifexprint.com",
		TRN:        "104106033400003",
		BankName:   "ABU DHABI COMMERCIAL BANK(ADCB)",
		BankBranch: "SHARJAH MAIN BRANCH",
		SwiftCode:  "ADCBAEAA060",
		IBAN:       "AE0200300130588589200001",
		Salesman:   "Zubair",
	}
}

// DocCustomer is the read-only customer projection a document renders
type DocCustomer struct {
	Name    string
	Address string
	City    string
}

// DocItem is one line item of a document
type DocItem struct {
	Name     string
	Quantity int
	Price    float64
}

// LineTotal returns quantity x unit price
func (it DocItem) LineTotal() float64 {
	return float64(it.Quantity) * it.Price
}

// QuotationDocument is the read-only projection the quotation layouts consume
type QuotationDocument struct {
	Number       string
	Date         time.Time
	DeliveryDate time.Time
	PaymentTerm  string
	Customer     DocCustomer
	Items        []DocItem
	TaxPercent   float64
}

// InvoiceDocument is the read-only projection the invoice layouts consume.
// Customer may be nil; the layouts print "N/A" then.
type InvoiceDocument struct {
	Number        string
	Date          time.Time
	Customer      *DocCustomer
	Items         []DocItem
	TaxPercent    float64
	DeliveryDate  *time.Time
	QuotationDate *time.Time
}

// Totals holds the money summary of a document
type Totals struct {
	Subtotal   float64
	TaxAmount  float64
	GrandTotal float64
}

// ComputeTotals sums the items and applies the single global tax rate once
// to the subtotal.
func ComputeTotals(items []DocItem, taxPercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	tax := subtotal * taxPercent / 100
	return Totals{Subtotal: subtotal, TaxAmount: tax, GrandTotal: subtotal + tax}
}

// PageCount returns how many pages a paginated document occupies; an empty
// item list still renders one page.
func PageCount(itemCount int) int {
	if itemCount <= 0 {
		return 1
	}
	return (itemCount + ItemsPerPage - 1) / ItemsPerPage
}

package pdf

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Builder renders quotation and invoice documents with a fixed company
// letterhead, asset source and layout variant.
type Builder struct {
	Assets   AssetResolver
	Measurer TextMeasurer
	Company  CompanyInfo
	Variant  LayoutVariant
}

// NewBuilder wires a builder with real font metrics and the default
// letterhead.
func NewBuilder(assets AssetResolver, variant LayoutVariant) *Builder {
	if assets == nil {
		assets = NoAssets{}
	}
	return &Builder{
		Assets:   assets,
		Measurer: NewFpdfMeasurer(),
		Company:  DefaultCompany(),
		Variant:  variant,
	}
}

// BuildQuotation renders the quotation and returns the bytes plus the
// download filename.
func (b *Builder) BuildQuotation(doc QuotationDocument) ([]byte, string, error) {
	var pages PageList
	if b.Variant == VariantClassic {
		pages = ComposeQuotationClassic(doc, b.Measurer, b.Assets, b.Company)
	} else {
		pages = ComposeQuotationPages(doc, b.Measurer, b.Assets, b.Company)
	}
	out, err := Render(pages)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Quotation_%s.pdf", doc.Number), nil
}

// BuildInvoice renders the invoice and returns the bytes plus the download
// filename. The paginated layout carries a QR fingerprint of the document;
// QR generation failure is not fatal, the block is simply omitted.
func (b *Builder) BuildInvoice(doc InvoiceDocument) ([]byte, string, error) {
	var pages PageList
	if b.Variant == VariantClassic {
		pages = ComposeTaxInvoicePage(doc, b.Assets, b.Company)
	} else {
		totals := ComputeTotals(doc.Items, doc.TaxPercent)
		payload := fmt.Sprintf("TRN:%s|NO:%s|DATE:%s|TOTAL:%.2f",
			b.Company.TRN, doc.Number, fmtDate(doc.Date), totals.GrandTotal)
		qr, qErr := qrcode.Encode(payload, qrcode.Medium, 256)
		if qErr != nil {
			qr = nil
		}
		pages = ComposeInvoicePages(doc, b.Measurer, b.Assets, b.Company, qr)
	}
	out, err := Render(pages)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("Invoice_%s.pdf", doc.Number), nil
}

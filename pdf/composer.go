package pdf

import (
	"fmt"
	"strings"
	"time"
)

// Layout variant selection. The paginated layouts are the default; the
// classic single-page layouts are kept for tenants that still print the
// older stationery.
type LayoutVariant string

const (
	VariantPaginated LayoutVariant = "paginated"
	VariantClassic   LayoutVariant = "classic"
)

// VariantFromEnv reads PDF_LAYOUT_VARIANT; anything but "classic" selects
// the paginated layouts.
func VariantFromEnv(value string) LayoutVariant {
	if LayoutVariant(value) == VariantClassic {
		return VariantClassic
	}
	return VariantPaginated
}

func fmtMoney(v float64) string { return fmt.Sprintf("%.2f", v) }

func fmtDate(t time.Time) string { return t.Format("02/01/2006") }

func fmtDateShort(t time.Time) string { return t.Format("02-Jan-06") }

// spacedIBAN groups an IBAN into 4-character blocks for print
func spacedIBAN(iban string) string {
	var b strings.Builder
	for i, r := range iban {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fallbackLogo draws the three-circle mark with the company short name when
// no logo asset is available. The accent color differs per stationery.
func fallbackLogo(co CompanyInfo, accent Color, withTagline bool) []Command {
	circleY := PageHeight - 80
	cmds := []Command{
		Circle{X: 70, Y: circleY, R: 12, Fill: colorDeepBlue},
		Circle{X: 88, Y: circleY - 3, R: 10, Fill: accent},
		Circle{X: 103, Y: circleY + 2, R: 8, Fill: colorRoyalBlue},
		Text{X: 120, Y: circleY - 6, S: co.ShortName, Style: "B", Size: 36, Color: accent},
	}
	if withTagline {
		for i, line := range strings.SplitN(co.Tagline, " AND ", 2) {
			if i == 0 {
				line += " AND"
			}
			cmds = append(cmds, Text{X: 238, Y: PageHeight - 85 - float64(i)*12, S: line, Size: 9, Color: colorGray})
		}
	}
	return cmds
}

// gridRow emits the cell rectangles of one table row, top edge at top
func gridRow(x, top float64, widths []float64, h float64, fill *Color, grid Color, gridW float64) []Command {
	cmds := make([]Command, 0, len(widths))
	cx := x
	for _, w := range widths {
		cmds = append(cmds, Rect{X: cx, Y: top - h, W: w, H: h, Fill: fill, Stroke: &grid, LineWidth: gridW})
		cx += w
	}
	return cmds
}

// tableHeader emits a filled header row with centered bold labels
func tableHeader(x, top float64, widths []float64, labels []string, bg, txt, grid Color, gridW, fontSize, h float64) []Command {
	cmds := gridRow(x, top, widths, h, &bg, grid, gridW)
	cx := x
	for i, w := range widths {
		cmds = append(cmds, Text{
			X: cx + w/2, Y: top - h/2 - fontSize*0.35,
			S: labels[i], Style: "B", Size: fontSize, Color: txt, Align: AlignCenter,
		})
		cx += w
	}
	return cmds
}

// itemRow emits one item line: centered NO/QTY/RATE/TOTAL cells and a
// left-aligned wrapped description block, vertically centered in the row.
func itemRow(x, top float64, widths []float64, h float64, fill *Color, grid Color, gridW float64, no, qty, rate, total string, descLines []string) []Command {
	cmds := gridRow(x, top, widths, h, fill, grid, gridW)
	vb := top - h/2 - itemFontSize*0.35
	centered := []struct {
		col int
		s   string
	}{{0, no}, {2, qty}, {3, rate}, {4, total}}
	for _, c := range centered {
		if c.s == "" {
			continue
		}
		cx := x
		for i := 0; i < c.col; i++ {
			cx += widths[i]
		}
		cmds = append(cmds, Text{X: cx + widths[c.col]/2, Y: vb, S: c.s, Size: itemFontSize, Color: colorBlack, Align: AlignCenter})
	}
	textH := float64(len(descLines)) * itemLeading
	baseline := top - (h-textH)/2 - itemFontSize*0.8
	for i, line := range descLines {
		if line == "" {
			continue
		}
		cmds = append(cmds, Text{X: x + widths[0] + 5, Y: baseline - float64(i)*itemLeading, S: line, Size: itemFontSize, Color: colorBlack})
	}
	return cmds
}

// quotationLetterhead is the shared top section of both quotation layouts:
// logo, angled company banner, title, document details, customer and bank
// boxes and the executive bar.
func quotationLetterhead(doc QuotationDocument, assets AssetResolver, co CompanyInfo, classic bool) []Command {
	var cmds []Command

	if logo, ok := assets.Resolve(AssetLogo); ok {
		cmds = append(cmds, Image{Name: AssetLogo, Data: logo, X: 30, Y: PageHeight - 140, W: 220, H: 130})
	} else {
		cmds = append(cmds, fallbackLogo(co, colorLightBlue, classic)...)
	}

	bannerX := PageWidth - 320.0
	bannerY := PageHeight - 130.0
	cmds = append(cmds, Polygon{
		Points: []Point{
			{bannerX + 40, bannerY},
			{bannerX + headerBannerWidth, bannerY},
			{bannerX + headerBannerWidth, bannerY + headerBannerHeight},
			{bannerX, bannerY + headerBannerHeight},
		},
		Fill: colorNavyBlue,
	})
	textX := bannerX + headerBannerWidth - 20
	bannerTop := bannerY + headerBannerHeight
	cmds = append(cmds,
		Text{X: textX, Y: bannerTop - 30, S: co.Name, Style: "B", Size: 11, Color: colorWhite, Align: AlignRight},
		Text{X: textX, Y: bannerTop - 45, S: "Phone: " + co.Phone, Size: 9, Color: colorWhite, Align: AlignRight},
		Text{X: textX, Y: bannerTop - 57, S: co.Address, Size: 9, Color: colorWhite, Align: AlignRight},
		Text{X: textX, Y: bannerTop - 69, S: "E mail: " + co.SalesEmail, Size: 9, Color: colorWhite, Align: AlignRight},
		Text{X: textX, Y: bannerTop - 85, S: co.Website, Style: "B", Size: 10, Color: colorWhite, Align: AlignRight},
	)

	cmds = append(cmds, Text{X: marginX, Y: PageHeight - 170, S: "QUOTATION", Style: "B", Size: 32, Color: colorNavyBlue})

	detailsX := PageWidth - 50.0
	detailsY := PageHeight - 150.0
	cmds = append(cmds,
		Text{X: detailsX, Y: detailsY, S: "QUOTATION NO.              " + doc.Number, Style: "B", Size: 11, Color: colorBlack, Align: AlignRight},
		Text{X: detailsX, Y: detailsY - 15, S: "DATE              " + fmtDate(doc.Date), Style: "B", Size: 11, Color: colorBlack, Align: AlignRight},
		Text{X: detailsX, Y: detailsY - 30, S: "TRN." + co.TRN, Style: "B", Size: 11, Color: colorBlack, Align: AlignRight},
	)

	// Customer and bank boxes sit at the same level
	sectionY := PageHeight - 270.0
	cmds = append(cmds,
		Rect{X: marginX, Y: sectionY - 20, W: infoBoxWidth, H: infoBoxHeight, Stroke: &colorGray, LineWidth: 1},
		Text{X: marginX + 5, Y: sectionY + 55, S: "TO", Style: "B", Size: 11, Color: colorBlack},
		Text{X: marginX + 10, Y: sectionY + 40, S: doc.Customer.Name, Size: 11, Color: colorDarkGray},
	)
	addressY := sectionY + 28
	if doc.Customer.Address != "" {
		lines := strings.Split(doc.Customer.Address, ",")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		for i, line := range lines {
			cmds = append(cmds, Text{X: marginX + 10, Y: addressY - float64(i)*12, S: strings.TrimSpace(line), Size: 11, Color: colorDarkGray})
		}
	} else if classic {
		city := doc.Customer.City
		if city == "" {
			city = "United Arab Emirates"
		}
		cmds = append(cmds,
			Text{X: marginX + 10, Y: addressY, S: "UAE", Size: 11, Color: colorDarkGray},
			Text{X: marginX + 10, Y: addressY - 12, S: city, Size: 11, Color: colorDarkGray},
		)
	}

	bankX := PageWidth - 300.0
	bankCX := bankX + infoBoxWidth/2
	cmds = append(cmds,
		Rect{X: bankX, Y: sectionY - 20, W: infoBoxWidth, H: infoBoxHeight, Stroke: &colorGray, LineWidth: 1},
		Text{X: bankCX, Y: sectionY + 35, S: co.Name + ".", Style: "B", Size: 9, Color: colorBlack, Align: AlignCenter},
		Text{X: bankCX, Y: sectionY + 20, S: "A/c DETAILS : " + co.BankName, Size: 8.5, Color: colorBlack, Align: AlignCenter},
		Text{X: bankCX, Y: sectionY + 11, S: co.IBAN, Size: 8.5, Color: colorBlack, Align: AlignCenter},
	)

	// Executive bar: sales contact, delivery date and payment terms
	execY := PageHeight - 330.0
	colW := tableWidth / 3
	payment := doc.PaymentTerm
	if payment == "" {
		payment = "COD"
	}
	cmds = append(cmds,
		Rect{X: marginX, Y: execY, W: tableWidth, H: execBarHeight, Fill: &colorNavyBlue},
		Text{X: marginX + colW/2, Y: execY + 7, S: "Business Development Executive", Style: "B", Size: 9, Color: colorWhite, Align: AlignCenter},
		Text{X: marginX + colW + colW/2, Y: execY + 7, S: "DELIVERY DATE", Style: "B", Size: 9, Color: colorWhite, Align: AlignCenter},
		Text{X: marginX + 2*colW + colW/2, Y: execY + 7, S: "PAYMENT TERMS", Style: "B", Size: 9, Color: colorWhite, Align: AlignCenter},
		Rect{X: marginX, Y: execY - execBarRowH, W: tableWidth, H: execBarRowH, Fill: &colorLightGray},
		Text{X: marginX + colW/2, Y: execY - 11, S: co.Salesman, Size: 9, Color: colorBlack, Align: AlignCenter},
		Text{X: marginX + colW + colW/2, Y: execY - 11, S: fmtDate(doc.DeliveryDate), Size: 9, Color: colorBlack, Align: AlignCenter},
		Text{X: marginX + 2*colW + colW/2, Y: execY - 11, S: payment, Size: 9, Color: colorBlack, Align: AlignCenter},
	)

	return cmds
}

// quotationFooterBand draws the silver footer strip. The paginated layout
// prints the page number on the right; the classic layout prints a thank
// you note instead.
func quotationFooterBand(co CompanyInfo, pageNum, totalPages int) []Command {
	contact := fmt.Sprintf("For questions: Phone: %s, %s | Email: %s, %s", co.Phone, co.AltPhone, co.Email, co.SalesEmail)
	cmds := []Command{
		Rect{X: 0, Y: 0, W: PageWidth, H: footerBandHeight, Fill: &colorSilverGray},
		Text{X: marginX, Y: footerBandHeight - 18, S: co.Name, Style: "B", Size: 10, Color: colorNavyBlue},
		Text{X: marginX, Y: footerBandHeight - 32, S: co.City, Size: 8, Color: colorNavyBlue},
		Text{X: marginX, Y: footerBandHeight - 44, S: contact, Size: 8, Color: colorNavyBlue},
	}
	if totalPages > 0 {
		cmds = append(cmds, Text{
			X: PageWidth - 50, Y: footerBandHeight - 25,
			S: fmt.Sprintf("Page %d of %d", pageNum, totalPages), Size: 8, Color: colorBlack, Align: AlignRight,
		})
	} else {
		cmds = append(cmds, Text{
			X: PageWidth - 50, Y: footerBandHeight - 25,
			S: "Thank you for your business!", Style: "B", Size: 10, Color: colorBlack, Align: AlignRight,
		})
	}
	return cmds
}

// quotationTotalsBoxes draws the boxed NET/VAT/TOTAL summary with the grand
// total spelled out underneath and the footer logo on the left.
func quotationTotalsBoxes(totalsY float64, t Totals, taxPercent float64, assets AssetResolver, co CompanyInfo) []Command {
	cmds := []Command{
		Rect{X: totalsX, Y: totalsY, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorSilverGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY + 5, S: "NET AMOUNT", Style: "B", Size: 9, Color: colorNavyBlue},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY + 5, S: fmtMoney(t.Subtotal), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},

		Rect{X: totalsX, Y: totalsY - totalsBoxHeight, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorSilverGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY - totalsBoxHeight + 5, S: fmt.Sprintf("VAT (%g%%)", taxPercent), Style: "B", Size: 9, Color: colorNavyBlue},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY - totalsBoxHeight + 5, S: fmtMoney(t.TaxAmount), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},

		Rect{X: totalsX, Y: totalsY - 2*totalsBoxHeight, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorLightGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY - 2*totalsBoxHeight + 5, S: "TOTAL AMOUNT", Style: "B", Size: 10, Color: colorBlack},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY - 2*totalsBoxHeight + 5, S: fmtMoney(t.GrandTotal) + "/-", Style: "B", Size: 10, Color: colorBlack, Align: AlignRight},
	}

	wordsY := totalsY - 3*totalsBoxHeight - 10
	cmds = append(cmds, Text{
		X: marginX, Y: wordsY,
		S: "Amount in Words: " + AmountInWords(t.GrandTotal), Style: "I", Size: 10, Color: colorBlack,
	})

	if logo, ok := assets.Resolve(AssetFooterLogo); ok {
		cmds = append(cmds, Image{Name: AssetFooterLogo, Data: logo, X: 40, Y: totalsY + 20 - 60, W: 120, H: 60})
	} else {
		cmds = append(cmds, Text{X: 40, Y: totalsY + 20, S: "IFEX PR AND ADVERTISING", Style: "B", Size: 10, Color: colorBlack})
	}
	return cmds
}

// ComposeQuotationPages lays out the paginated quotation. Items fill pages
// by count, the item counter runs across pages and the money summary only
// appears on the final page.
func ComposeQuotationPages(doc QuotationDocument, m TextMeasurer, assets AssetResolver, co CompanyInfo) PageList {
	totalPages := PageCount(len(doc.Items))
	totals := ComputeTotals(doc.Items, doc.TaxPercent)
	colWidths := []float64{20, PageWidth - 290, 30, 70, 70}
	headers := []string{"NO", "DESCRIPTION", "QTY", "UNIT PRICE", "LINE TOTAL"}

	pages := make(PageList, 0, totalPages)
	counter := 1
	for pg := 0; pg < totalPages; pg++ {
		var page Page
		page = append(page, quotationLetterhead(doc, assets, co, false)...)
		page = append(page, quotationFooterBand(co, pg+1, totalPages)...)
		page = append(page, tableHeader(marginX, quotationTableTopY+tableHeaderHeight, colWidths, headers, colorNavyBlue, colorWhite, colorGray, 1, 10, tableHeaderHeight)...)

		start := pg * ItemsPerPage
		end := start + ItemsPerPage
		if end > len(doc.Items) {
			end = len(doc.Items)
		}
		cursor := quotationTableTopY
		for _, it := range doc.Items[start:end] {
			lines := m.SplitLines(it.Name, colWidths[1]-10, itemFontSize)
			h := RowHeight(len(lines), minRowHeight)
			page = append(page, itemRow(marginX, cursor, colWidths, h, nil, colorGray, 0.5,
				fmt.Sprintf("%d", counter), fmt.Sprintf("%d", it.Quantity), fmtMoney(it.Price), fmtMoney(it.LineTotal()), lines)...)
			cursor -= h
			counter++
		}

		if pg == totalPages-1 {
			page = append(page, quotationTotalsBoxes(PageHeight-650, totals, doc.TaxPercent, assets, co)...)
		}
		pages = append(pages, page)
	}
	return pages
}

// ComposeQuotationClassic lays out the single-page quotation: items padded
// with blank rows to keep the table shape, alternating row tint, and the
// summary placed right below the table.
func ComposeQuotationClassic(doc QuotationDocument, m TextMeasurer, assets AssetResolver, co CompanyInfo) PageList {
	totals := ComputeTotals(doc.Items, doc.TaxPercent)
	colWidths := []float64{35, tableWidth - 245, 50, 80, 80}
	headers := []string{"NO", "DESCRIPTION", "QTY", "UNIT PRICE", "LINE TOTAL"}

	var page Page
	page = append(page, quotationLetterhead(doc, assets, co, true)...)
	page = append(page, tableHeader(marginX, quotationTableTopY+tableHeaderHeight, colWidths, headers, colorNavyBlue, colorWhite, colorGray, 1, 10, tableHeaderHeight)...)

	blankRows := 8 - len(doc.Items)
	if blankRows < 4 {
		blankRows = 4
	}
	cursor := quotationTableTopY
	rowIdx := 0
	fillFor := func(i int) *Color {
		if i%2 == 0 {
			return &colorAltRowBlue
		}
		return &colorWhite
	}
	for i, it := range doc.Items {
		lines := m.SplitLines(it.Name, colWidths[1]-10, itemFontSize)
		h := RowHeight(len(lines), minRowHeight)
		page = append(page, itemRow(marginX, cursor, colWidths, h, fillFor(rowIdx), colorGray, 0.5,
			fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", it.Quantity), fmtMoney(it.Price), fmtMoney(it.LineTotal()), lines)...)
		cursor -= h
		rowIdx++
	}
	for i := 0; i < blankRows; i++ {
		page = append(page, itemRow(marginX, cursor, colWidths, minRowHeight, fillFor(rowIdx), colorGray, 0.5, "", "", "", "", nil)...)
		cursor -= minRowHeight
		rowIdx++
	}

	// Words above the boxed totals on this layout
	wordsY := cursor - 15
	page = append(page, Text{
		X: marginX, Y: wordsY,
		S: "Amount in Words: " + AmountInWords(totals.GrandTotal), Style: "I", Size: 10, Color: colorBlack,
	})
	totalsY := wordsY - 45
	page = append(page,
		Rect{X: totalsX, Y: totalsY, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorSilverGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY + 5, S: "NET AMOUNT", Style: "B", Size: 9, Color: colorNavyBlue},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY + 5, S: fmtMoney(totals.Subtotal), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
		Rect{X: totalsX, Y: totalsY - totalsBoxHeight, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorSilverGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY - totalsBoxHeight + 5, S: fmt.Sprintf("VAT (%g%%)", doc.TaxPercent), Style: "B", Size: 9, Color: colorNavyBlue},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY - totalsBoxHeight + 5, S: fmtMoney(totals.TaxAmount), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
		Rect{X: totalsX, Y: totalsY - 2*totalsBoxHeight, W: totalsBoxWidth, H: totalsBoxHeight, Fill: &colorLightGray, Stroke: &colorGray, LineWidth: 0.5},
		Text{X: totalsX + 5, Y: totalsY - 2*totalsBoxHeight + 5, S: "TOTAL AMOUNT", Style: "B", Size: 10, Color: colorBlack},
		Text{X: totalsX + totalsBoxWidth - 5, Y: totalsY - 2*totalsBoxHeight + 5, S: fmtMoney(totals.GrandTotal) + "/-", Style: "B", Size: 10, Color: colorBlack, Align: AlignRight},
	)

	if logo, ok := assets.Resolve(AssetFooterLogo); ok {
		page = append(page, Image{Name: AssetFooterLogo, Data: logo, X: marginX, Y: totalsY + 20 - 60, W: 120, H: 60})
	} else {
		page = append(page, Text{X: marginX, Y: totalsY + 20, S: "IFEX PR AND ADVERTISING", Style: "B", Size: 10, Color: colorBlack})
	}

	page = append(page, quotationFooterBand(co, 0, 0)...)
	return PageList{page}
}

// invoiceCustomerName resolves the printable customer name; invoices may
// carry no customer at all.
func invoiceCustomerName(doc InvoiceDocument) string {
	if doc.Customer == nil || doc.Customer.Name == "" {
		return "N/A"
	}
	return doc.Customer.Name
}

func invoiceHeader(doc InvoiceDocument, assets AssetResolver, co CompanyInfo) []Command {
	var cmds []Command
	if logo, ok := assets.Resolve(AssetLogo); ok {
		cmds = append(cmds, Image{Name: AssetLogo, Data: logo, X: 30, Y: PageHeight - 140, W: 200, H: 120})
	} else {
		cmds = append(cmds, Text{X: 50, Y: PageHeight - 100, S: "Company Logo", Style: "B", Size: 20, Color: colorBlack})
	}
	cmds = append(cmds,
		Text{X: PageWidth / 2, Y: PageHeight - 60, S: "INVOICE", Style: "B", Size: 26, Color: colorBlack, Align: AlignCenter},
		Text{X: PageWidth - 50, Y: PageHeight - 120, S: "INVOICE NO " + doc.Number, Size: 10, Color: colorBlack, Align: AlignRight},
		Text{X: PageWidth - 50, Y: PageHeight - 135, S: "DATE " + fmtDate(doc.Date), Size: 10, Color: colorBlack, Align: AlignRight},
	)

	boxY := PageHeight - 200.0
	cmds = append(cmds,
		Rect{X: marginX, Y: boxY - 60, W: PageWidth - 100, H: 60, Stroke: &colorBlack, LineWidth: 1},
		Text{X: 60, Y: boxY - 15, S: "TO", Style: "B", Size: 10, Color: colorBlack},
		Text{X: 100, Y: boxY - 15, S: invoiceCustomerName(doc), Size: 10, Color: colorBlack},
		Text{X: 60, Y: boxY - 35, S: "SALES PERSON: " + co.Salesman, Size: 10, Color: colorBlack},
	)
	if doc.QuotationDate != nil {
		cmds = append(cmds, Text{X: PageWidth / 2, Y: boxY - 35, S: "LPO DATE: " + fmtDate(*doc.QuotationDate), Size: 10, Color: colorBlack})
	}
	return cmds
}

func invoiceFooter(doc InvoiceDocument, co CompanyInfo, pageNum, totalPages int) []Command {
	cmds := []Command{
		Text{X: marginX, Y: 105, S: "Prepared by.", Style: "B", Size: 9, Color: colorBlack},
		Text{X: 200, Y: 105, S: "Received by.", Style: "B", Size: 9, Color: colorBlack},
		Text{X: marginX, Y: 90, S: "PAYMENT TERMS", Style: "B", Size: 9, Color: colorBlack},
		Text{X: 200, Y: 90, S: "DELIVERY DATE", Style: "B", Size: 9, Color: colorBlack},
		Text{X: marginX, Y: 78, S: "COD", Size: 9, Color: colorBlack},
		Text{X: marginX, Y: 65, S: "BANK DETAILS : " + co.Name, Style: "B", Size: 9, Color: colorBlack},
		Text{X: marginX, Y: 52, S: fmt.Sprintf("ADCB : %s, SWIFT CODE : %s", co.BankBranch, co.SwiftCode), Size: 8, Color: colorBlack},
		Text{X: marginX, Y: 40, S: "IBAN : " + spacedIBAN(co.IBAN), Size: 8, Color: colorBlack},
		Text{X: PageWidth - 50, Y: 52, S: "TRN. " + co.TRN, Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
		Text{X: PageWidth - 50, Y: 37, S: "TAX INVOICE", Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
		Text{X: PageWidth - 50, Y: 20, S: fmt.Sprintf("Page %d of %d", pageNum, totalPages), Size: 8, Color: colorMidGray, Align: AlignRight},
	}
	if doc.DeliveryDate != nil {
		cmds = append(cmds, Text{X: 200, Y: 78, S: fmtDateShort(*doc.DeliveryDate), Size: 9, Color: colorBlack})
	}
	return cmds
}

// ComposeInvoicePages lays out the paginated grayscale invoice. Same
// pagination rules as the quotation; the last page also carries a QR block
// with the document fingerprint when qr bytes are supplied.
func ComposeInvoicePages(doc InvoiceDocument, m TextMeasurer, assets AssetResolver, co CompanyInfo, qr []byte) PageList {
	totalPages := PageCount(len(doc.Items))
	totals := ComputeTotals(doc.Items, doc.TaxPercent)
	colWidths := []float64{30, PageWidth - 330, 50, 70, 80}
	headers := []string{"NO", "DESCRIPTION", "QTY", "RATE", "LINE TOTAL"}

	pages := make(PageList, 0, totalPages)
	counter := 1
	for pg := 0; pg < totalPages; pg++ {
		var page Page
		page = append(page, invoiceHeader(doc, assets, co)...)
		page = append(page, invoiceFooter(doc, co, pg+1, totalPages)...)
		page = append(page, tableHeader(marginX, invoiceTableTopY+tableHeaderHeight, colWidths, headers, colorMidGray, colorWhite, colorMidGray, 0.5, 9, tableHeaderHeight)...)

		start := pg * ItemsPerPage
		end := start + ItemsPerPage
		if end > len(doc.Items) {
			end = len(doc.Items)
		}
		cursor := invoiceTableTopY
		for _, it := range doc.Items[start:end] {
			lines := m.SplitLines(it.Name, colWidths[1]-10, itemFontSize)
			h := RowHeight(len(lines), 20)
			page = append(page, itemRow(marginX, cursor, colWidths, h, nil, colorMidGray, 0.25,
				fmt.Sprintf("%d", counter), fmt.Sprintf("%d", it.Quantity), fmtMoney(it.Price), fmtMoney(it.LineTotal()), lines)...)
			cursor -= h
			counter++
		}

		if pg == totalPages-1 {
			totalsY := PageHeight - 600.0
			page = append(page,
				Text{X: totalsX, Y: totalsY, S: "NET AMOUNT", Style: "B", Size: 9, Color: colorBlack},
				Text{X: totalsX + totalsBoxWidth, Y: totalsY, S: fmtMoney(totals.Subtotal), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
				Text{X: totalsX, Y: totalsY - 15, S: fmt.Sprintf("VAT (%g%%)", doc.TaxPercent), Style: "B", Size: 9, Color: colorBlack},
				Text{X: totalsX + totalsBoxWidth, Y: totalsY - 15, S: fmtMoney(totals.TaxAmount), Style: "B", Size: 9, Color: colorBlack, Align: AlignRight},
				Text{X: totalsX, Y: totalsY - 30, S: "TOTAL AMOUNT", Style: "B", Size: 10, Color: colorBlack},
				Text{X: totalsX + totalsBoxWidth, Y: totalsY - 30, S: fmtMoney(totals.GrandTotal) + "/-", Style: "B", Size: 10, Color: colorBlack, Align: AlignRight},
				Text{X: marginX, Y: totalsY - 55, S: "Amount in Words: " + AmountInWords(totals.GrandTotal), Style: "I", Size: 9, Color: colorBlack},
			)
			if logo, ok := assets.Resolve(AssetFooterLogo); ok {
				page = append(page, Image{Name: AssetFooterLogo, Data: logo, X: 40, Y: totalsY - 40, W: 100, H: 50})
			}
			if len(qr) > 0 {
				page = append(page, Image{Name: "invoice-qr", Data: qr, X: PageWidth - 120, Y: 110, W: 70, H: 70})
			}
		}
		pages = append(pages, page)
	}
	return pages
}

// ComposeTaxInvoicePage lays out the classic single-page TAX INVOICE with
// per-line tax columns, a fixed 15-row body and the blue footer bar.
func ComposeTaxInvoicePage(doc InvoiceDocument, assets AssetResolver, co CompanyInfo) PageList {
	totals := ComputeTotals(doc.Items, doc.TaxPercent)
	var page Page

	if banner, ok := assets.Resolve(AssetHeaderBanner); ok {
		page = append(page, Image{Name: AssetHeaderBanner, Data: banner, X: 10, Y: PageHeight - 100, W: 555, H: 80})
	} else {
		page = append(page, fallbackLogo(co, colorSteelBlue, false)...)
		page = append(page,
			Rect{X: 280, Y: PageHeight - 100, W: 280, H: 65, Fill: &colorSlateBlue},
			Polygon{Points: []Point{
				{260, PageHeight - 100},
				{280, PageHeight - 100},
				{280, PageHeight - 35},
				{260, PageHeight - 35},
				{240, PageHeight - 67.5},
			}, Fill: colorSlateBlue},
			Text{X: 550, Y: PageHeight - 57, S: co.Name, Size: 9, Color: colorWhite, Align: AlignRight},
			Text{X: 550, Y: PageHeight - 69, S: "C.R.No. 4030434660", Size: 9, Color: colorWhite, Align: AlignRight},
			Text{X: 550, Y: PageHeight - 81, S: co.Address, Size: 9, Color: colorWhite, Align: AlignRight},
			Text{X: 550, Y: PageHeight - 93, S: "E mail: " + co.Email, Size: 9, Color: colorWhite, Align: AlignRight},
			Text{X: 550, Y: PageHeight - 105, S: co.Website, Size: 9, Color: colorWhite, Align: AlignRight},
		)
	}

	page = append(page,
		Text{X: marginX, Y: PageHeight - 140, S: "TAX INVOICE", Style: "B", Size: 18, Color: colorSlateBlue},
		Text{X: 380, Y: PageHeight - 130, S: "INVOICE NO", Size: 10, Color: colorBlack},
		Text{X: 380, Y: PageHeight - 145, S: "DATE", Size: 10, Color: colorBlack},
		Text{X: 380, Y: PageHeight - 160, S: "PO NO.", Size: 10, Color: colorBlack},
		Text{X: 480, Y: PageHeight - 130, S: doc.Number, Size: 10, Color: colorBlack},
		Text{X: 480, Y: PageHeight - 145, S: fmtDate(doc.Date), Size: 10, Color: colorBlack},
		Text{X: marginX, Y: PageHeight - 180, S: "TRN. " + co.TRN, Size: 10, Color: colorBlack},
		Line{X1: marginX, Y1: PageHeight - 190, X2: 560, Y2: PageHeight - 190, Color: colorBlack, Width: 1},
		Text{X: marginX, Y: PageHeight - 210, S: "TO", Size: 10, Color: colorBlack},
		Text{X: 80, Y: PageHeight - 210, S: invoiceCustomerName(doc), Size: 10, Color: colorBlack},
	)
	if doc.Customer != nil && doc.Customer.Address != "" {
		line1, line2, _ := strings.Cut(doc.Customer.Address, ",")
		page = append(page, Text{X: 80, Y: PageHeight - 225, S: strings.TrimSpace(line1), Size: 10, Color: colorBlack})
		if line2 = strings.TrimSpace(line2); line2 != "" {
			page = append(page, Text{X: 80, Y: PageHeight - 240, S: line2, Size: 10, Color: colorBlack})
		}
		if doc.Customer.City != "" {
			page = append(page, Text{X: 80, Y: PageHeight - 255, S: doc.Customer.City, Size: 10, Color: colorBlack})
		}
	}

	// Sales info strip
	salesCols := []float64{127.5, 127.5, 127.5, 127.5}
	salesBottom := PageHeight - 320.0
	lpo := ""
	if doc.QuotationDate != nil {
		lpo = fmtDate(*doc.QuotationDate)
	}
	delivery := ""
	if doc.DeliveryDate != nil {
		delivery = fmtDate(*doc.DeliveryDate)
	}
	page = append(page, tableHeader(marginX, salesBottom+36, salesCols, []string{"SALES PERSON", "LPO DATE", "DELIVERY DATE", "PAYMENT TERMS"}, colorSlateBlue, colorWhite, colorBlack, 0.5, 9, 18)...)
	page = append(page, gridRow(marginX, salesBottom+18, salesCols, 18, &colorWhite, colorBlack, 0.5)...)
	for i, v := range []string{co.Salesman, lpo, delivery, "COD"} {
		x := marginX
		for j := 0; j < i; j++ {
			x += salesCols[j]
		}
		page = append(page, Text{X: x + salesCols[i]/2, Y: salesBottom + 18 - 12, S: v, Size: 9, Color: colorBlack, Align: AlignCenter})
	}

	// Items table: fixed body padded to 15 rows plus a TOTAL row, anchored
	// above the signature area
	colWidths := []float64{30, 200, 50, 50, 60, 40, 80}
	const (
		itemsHeaderH = 24.0
		itemsRowH    = 18.0
		itemsBottomY = 200.0
	)
	bodyRows := len(doc.Items)
	if bodyRows < 15 {
		bodyRows = 15
	}
	top := itemsBottomY + itemsHeaderH + float64(bodyRows+1)*itemsRowH

	page = append(page, gridRow(marginX, top, colWidths, itemsHeaderH, &colorSlateBlue, colorBlack, 0.5)...)
	headerLabels := []string{"NO", "DESCRIPTION", "QTY", "RATE", "", "%", "LINE TOTAL"}
	cx := marginX
	for i, w := range colWidths {
		if i == 4 {
			page = append(page,
				Text{X: cx + w/2, Y: top - 10, S: "TAX", Style: "B", Size: 8, Color: colorWhite, Align: AlignCenter},
				Text{X: cx + w/2, Y: top - 19, S: "AMOUNT", Style: "B", Size: 8, Color: colorWhite, Align: AlignCenter},
			)
		} else {
			page = append(page, Text{X: cx + w/2, Y: top - itemsHeaderH/2 - 2.8, S: headerLabels[i], Style: "B", Size: 8, Color: colorWhite, Align: AlignCenter})
		}
		cx += w
	}

	cursor := top - itemsHeaderH
	taxRow := func(topY float64, fill *Color, bold bool, cells [7]string) {
		page = append(page, gridRow(marginX, topY, colWidths, itemsRowH, fill, colorBlack, 0.5)...)
		style := ""
		if bold {
			style = "B"
		}
		x := marginX
		for i, w := range colWidths {
			if cells[i] != "" {
				align := AlignCenter
				tx := x + w/2
				if i == 1 {
					align = AlignLeft
					tx = x + 5
				}
				page = append(page, Text{X: tx, Y: topY - itemsRowH/2 - 3.15, S: cells[i], Style: style, Size: 9, Color: colorBlack, Align: align})
			}
			x += w
		}
	}
	for i, it := range doc.Items {
		itemTax := it.LineTotal() * doc.TaxPercent / 100
		taxRow(cursor, &colorWhite, false, [7]string{
			fmt.Sprintf("%d", i+1), it.Name, fmt.Sprintf("%d", it.Quantity),
			fmtMoney(it.Price), fmtMoney(itemTax), fmtMoney(doc.TaxPercent), fmtMoney(it.LineTotal() + itemTax),
		})
		cursor -= itemsRowH
	}
	for i := len(doc.Items); i < bodyRows; i++ {
		taxRow(cursor, &colorWhite, false, [7]string{})
		cursor -= itemsRowH
	}
	taxRow(cursor, &colorPaleGray, true, [7]string{
		"", "TOTAL", "", "", fmtMoney(totals.TaxAmount), fmtMoney(doc.TaxPercent), fmtMoney(totals.GrandTotal),
	})

	page = append(page,
		Text{X: marginX, Y: 180, S: AmountInWords(totals.GrandTotal), Style: "B", Size: 9, Color: colorBlack},
		Text{X: marginX, Y: 160, S: "Prepared by:", Size: 10, Color: colorBlack},
		Text{X: 400, Y: 160, S: "Received by:", Size: 10, Color: colorBlack},
	)
	if logo, ok := assets.Resolve(AssetFooterLogo); ok {
		page = append(page, Image{Name: AssetFooterLogo, Data: logo, X: 45, Y: 80, W: 130, H: 70})
	}

	page = append(page,
		Rect{X: 40, Y: 10, W: PageWidth - 80, H: 50, Fill: &colorFooterBlue},
		Text{X: 200, Y: 38, S: "BANK DETAILS : " + co.Name, Size: 8, Color: colorWhite},
		Text{X: 170, Y: 28, S: fmt.Sprintf("ADCB : %s, SWIFT CODE : %s", co.BankBranch, co.SwiftCode), Size: 8, Color: colorWhite},
		Text{X: 230, Y: 18, S: "IBAN : " + spacedIBAN(co.IBAN), Size: 8, Color: colorWhite},
	)

	return PageList{page}
}

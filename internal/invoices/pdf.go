package invoices

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"docbuilder-backend/internal/i18n"
)

// ErrRender is returned when the PDF document could not be produced.
var ErrRender = errors.New("invoice pdf render failed")

const (
	fontFamily = "body"
	margin     = 15.0
	lineHeight = 6.0
)

var (
	headerFill = [3]int{41, 128, 185}
	stripeFill = [3]int{245, 245, 245}
	mutedText  = [3]int{110, 110, 110}
)

// Renderer draws invoices as A4 PDFs. It holds only font bytes and is safe
// for concurrent use; each Render builds its own document.
type Renderer struct {
	regular []byte
	bold    []byte
}

// NewRenderer loads TrueType fonts from disk. Empty paths fall back to the
// bundled Go fonts, which have no Arabic-script glyphs.
func NewRenderer(regularPath, boldPath string) (*Renderer, error) {
	regular, err := readFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := readFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

func readFont(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(filepath.Clean(path))
}

type column struct {
	key   string
	width float64
	align string
	value func(Item) string
}

// Render produces the PDF for inv using its stored language.
func (r *Renderer) Render(inv Invoice) ([]byte, error) {
	locale, err := i18n.ParseLocale(inv.Language)
	if err != nil {
		locale = i18n.English
	}
	rtl := locale.Direction() == i18n.RTL
	start, end := "L", "R"
	if rtl {
		start, end = "R", "L"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", r.regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", r.bold)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator("docbuilder", true)
	pdf.SetTitle(fmt.Sprintf("%s %d", i18n.T("invoiceTitle", locale), inv.InvoiceNumber), true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 3)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(mutedText[0], mutedText[1], mutedText[2])
		pdf.CellFormat(0, 5, strconv.Itoa(pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*margin

	// Header: company on the start side, title block on the end side.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(contentW/2, 10, inv.CompanyName, "", 0, start, false, 0, "")
	pdf.SetFont(fontFamily, "B", 22)
	pdf.CellFormat(contentW/2, 10, i18n.Upper(i18n.T("invoiceTitle", locale), locale), "", 1, end, false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(mutedText[0], mutedText[1], mutedText[2])
	meta := []string{
		fmt.Sprintf("%s %d", i18n.T("invoiceNumber", locale), inv.InvoiceNumber),
		fmt.Sprintf("%s: %s", i18n.T("date", locale), inv.CreatedAt.Format("2006-01-02")),
		fmt.Sprintf("%s: %s", i18n.T("status", locale), i18n.T(string(inv.Status), locale)),
	}
	for _, line := range meta {
		pdf.CellFormat(contentW, lineHeight, line, "", 1, end, false, 0, "")
	}
	pdf.Ln(4)

	// Bill to.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(contentW, lineHeight, i18n.T("billTo", locale), "", 1, start, false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	for _, line := range []string{inv.ClientName, inv.ClientEmail, inv.ClientAddress} {
		if line == "" {
			continue
		}
		pdf.MultiCell(contentW, 5, line, "", start, false)
	}
	pdf.Ln(6)

	columns := []column{
		{key: "description", width: contentW - 90, align: start, value: func(it Item) string { return it.Description }},
		{key: "quantity", width: 25, align: "C", value: func(it Item) string { return formatQuantity(it.Quantity) }},
		{key: "price", width: 30, align: end, value: func(it Item) string { return formatMoney(it.Price) }},
		{key: "amount", width: 35, align: end, value: func(it Item) string { return formatMoney(it.Amount) }},
	}
	if rtl {
		for i, j := 0, len(columns)-1; i < j; i, j = i+1, j-1 {
			columns[i], columns[j] = columns[j], columns[i]
		}
	}

	drawHeader := func() {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		pdf.SetTextColor(255, 255, 255)
		for _, col := range columns {
			pdf.CellFormat(col.width, 8, i18n.T(col.key, locale), "", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(0, 0, 0)
	}
	drawHeader()

	for i, it := range inv.Items {
		var descW float64
		for _, col := range columns {
			if col.key == "description" {
				descW = col.width
			}
		}
		lines := pdf.SplitText(it.Description, descW-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		rowH := float64(len(lines)) * lineHeight
		if pdf.GetY()+rowH > pageH-margin-5 {
			pdf.AddPage()
			drawHeader()
		}

		x, y := pdf.GetXY()
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(stripeFill[0], stripeFill[1], stripeFill[2])
			pdf.Rect(x, y, contentW, rowH, "F")
		}
		cx := x
		for _, col := range columns {
			pdf.SetXY(cx, y)
			if col.key == "description" {
				for _, line := range lines {
					pdf.SetX(cx)
					pdf.CellFormat(col.width, lineHeight, line, "", 2, col.align, false, 0, "")
				}
			} else {
				pdf.CellFormat(col.width, lineHeight, col.value(it), "", 0, col.align, false, 0, "")
			}
			cx += col.width
		}
		pdf.SetXY(x, y+rowH)
	}
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(margin, pdf.GetY(), pageW-margin, pdf.GetY())
	pdf.Ln(4)

	// Totals sit on the end side.
	labelW, valueW := 40.0, 35.0
	totalsX := pageW - margin - labelW - valueW
	if rtl {
		totalsX = margin
	}
	totals := []struct {
		label string
		value float64
		bold  bool
	}{
		{i18n.T("subtotal", locale), inv.Subtotal, false},
		{fmt.Sprintf("%s (%s%%)", i18n.T("tax", locale), formatQuantity(inv.TaxPercentage)), inv.TaxAmount, false},
		{i18n.T("total", locale), inv.TotalAmount, true},
	}
	for _, row := range totals {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, 11)
		pdf.SetX(totalsX)
		if rtl {
			pdf.CellFormat(valueW, 7, formatMoney(row.value), "", 0, "L", false, 0, "")
			pdf.CellFormat(labelW, 7, row.label, "", 1, "R", false, 0, "")
		} else {
			pdf.CellFormat(labelW, 7, row.label, "", 0, "L", false, 0, "")
			pdf.CellFormat(valueW, 7, formatMoney(row.value), "", 1, "R", false, 0, "")
		}
	}

	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont(fontFamily, "B", 11)
		pdf.CellFormat(contentW, lineHeight, i18n.T("notes", locale), "", 1, start, false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(contentW, 5, inv.Notes, "", start, false)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %w", ErrRender, pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename is the download name for an invoice PDF.
func Filename(inv Invoice) string {
	return fmt.Sprintf("invoice-%d.pdf", inv.InvoiceNumber)
}

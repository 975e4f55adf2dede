// Package pdf renders the exportable monthly financial report. The
// layout mirrors the printed report the organization has always used:
// letterhead, totals table, optional profit-sharing table, transaction
// table and a dated signature block.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"netkas/internal/core"
)

// Letterhead identifies the organization on the document.
type Letterhead struct {
	OrgName   string
	Address   string
	City      string
	Signatory string
}

const (
	marginLeft = 14.0
	pageWidth  = 210.0
	contentEnd = 196.0
	lineHeight = 7.0
)

// Render writes the report as a PDF document.
func Render(w io.Writer, lh Letterhead, r core.MonthlyReport, now time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// Letterhead
	doc.SetFont("Helvetica", "B", 18)
	doc.SetXY(marginLeft, 14)
	doc.Cell(0, 8, lh.OrgName)
	doc.SetFont("Helvetica", "", 11)
	doc.SetXY(marginLeft, 24)
	doc.Cell(0, 6, lh.Address)
	doc.Line(marginLeft, 34, contentEnd, 34)

	// Title
	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(0, 40)
	doc.CellFormat(pageWidth, 8, "Laporan Keuangan Bulanan - "+r.MonthName, "", 1, "C", false, 0, "")

	y := 55.0
	y = totalsTable(doc, y, r)

	if len(r.Shares) > 0 {
		y = profitTable(doc, y+8, r.Shares)
	}

	y = transactionTable(doc, y+8, r.Transactions)

	// Signature block, right aligned.
	y += 18
	doc.SetFont("Helvetica", "", 11)
	doc.SetXY(marginLeft, y)
	doc.CellFormat(contentEnd-marginLeft, 6, lh.City+", "+core.TodayID(now), "", 1, "R", false, 0, "")
	doc.SetXY(marginLeft, y+18)
	doc.CellFormat(contentEnd-marginLeft, 6, "Direktur Utama", "", 1, "R", false, 0, "")
	doc.SetXY(marginLeft, y+36)
	doc.CellFormat(contentEnd-marginLeft, 6, lh.Signatory, "", 1, "R", false, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func totalsTable(doc *fpdf.Fpdf, y float64, r core.MonthlyReport) float64 {
	rows := [][2]string{
		{"Total Pemasukan", core.FormatRupiah(r.TotalIncome.Cents)},
		{"Total Pengeluaran", core.FormatRupiah(r.TotalExpense.Cents)},
		{"Saldo Akhir (Laba/Rugi)", core.FormatRupiah(r.Balance.Cents)},
		{"Total via Transfer", core.FormatRupiah(r.TotalTransfer.Cents)},
		{"Total via Tunai", core.FormatRupiah(r.TotalCash.Cents)},
	}

	colDesc := 120.0
	colAmount := contentEnd - marginLeft - colDesc

	doc.SetXY(marginLeft, y)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(30, 41, 59)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(colDesc, lineHeight, "Deskripsi", "1", 0, "L", true, 0, "")
	doc.CellFormat(colAmount, lineHeight, "Jumlah", "1", 1, "L", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, row := range rows {
		doc.SetX(marginLeft)
		doc.CellFormat(colDesc, lineHeight, row[0], "1", 0, "L", false, 0, "")
		doc.CellFormat(colAmount, lineHeight, row[1], "1", 1, "R", false, 0, "")
	}
	return doc.GetY()
}

func profitTable(doc *fpdf.Fpdf, y float64, shares []core.PartnerShare) float64 {
	doc.SetXY(marginLeft, y)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 6, "Rincian Bagi Hasil", "", 1, "L", false, 0, "")

	colName := 120.0
	colShare := contentEnd - marginLeft - colName

	doc.SetX(marginLeft)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(51, 65, 85)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(colName, lineHeight, "Nama", "1", 0, "L", true, 0, "")
	doc.CellFormat(colShare, lineHeight, "Jumlah Diterima", "1", 1, "L", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(241, 245, 249)
	for i, s := range shares {
		doc.SetX(marginLeft)
		striped := i%2 == 1
		doc.CellFormat(colName, lineHeight, s.Name, "1", 0, "L", striped, 0, "")
		doc.CellFormat(colShare, lineHeight, core.FormatRupiahExact(s.Share.Cents), "1", 1, "R", striped, 0, "")
	}
	return doc.GetY()
}

func transactionTable(doc *fpdf.Fpdf, y float64, txs []core.Transaction) float64 {
	doc.SetXY(marginLeft, y)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 6, "Rincian Transaksi", "", 1, "L", false, 0, "")

	widths := []float64{26, 64, 24, 34, 34}
	headers := []string{"Tanggal", "Deskripsi", "Metode", "Pemasukan", "Pengeluaran"}

	doc.SetX(marginLeft)
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(30, 41, 59)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		last := i == len(headers)-1
		ln := 0
		if last {
			ln = 1
		}
		doc.CellFormat(widths[i], lineHeight, h, "1", ln, "L", true, 0, "")
	}

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	for _, t := range txs {
		income, expense := "-", "-"
		if t.Type == core.Income {
			income = core.FormatRupiah(t.Amount.Cents)
		} else {
			expense = core.FormatRupiah(t.Amount.Cents)
		}
		doc.SetX(marginLeft)
		doc.CellFormat(widths[0], lineHeight, core.FormatDayID(t.Date), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], lineHeight, t.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], lineHeight, string(t.PaymentMethod), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[3], lineHeight, income, "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[4], lineHeight, expense, "1", 1, "R", false, 0, "")
	}
	return doc.GetY()
}

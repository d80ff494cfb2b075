// Package reports renders period summaries as spreadsheets.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	MembersSheet = "Members"

	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Member is one row of the members sheet.
type Member struct {
	Name        string
	Email       string
	OptedIn     bool
	Plan        string
	Amount      decimal.Decimal
	LastUpdated time.Time
}

// FileName returns a download name for the period's workbook.
func FileName(period billing.Period) string {
	t, err := time.Parse(billing.PeriodLayout, string(period))
	if err != nil {
		return "mess_summary.xlsx"
	}
	return fmt.Sprintf("mess_summary_%s.xlsx", t.Format("2006_01"))
}

// ExportSummary renders the summary and the period's member list as an xlsx workbook.
func ExportSummary(summary billing.Summary, members []Member) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	title := []interface{}{"Period", summary.Period.String()}
	if err := f.SetSheetRow(SummarySheet, "A1", &title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	header := []interface{}{"Plan", "Subscribers", "Subtotal"}
	if err := f.SetSheetRow(SummarySheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 4
	for _, l := range summary.Lines {
		line := []interface{}{l.PlanName, l.Subscribers, l.Subtotal.InexactFloat64()}
		if err := setRow(f, SummarySheet, row, line); err != nil {
			return nil, err
		}
		row++
	}
	total := []interface{}{"Total", subscribers(summary), summary.Total.InexactFloat64()}
	if err := setRow(f, SummarySheet, row, total); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(MembersSheet); err != nil {
		return nil, fmt.Errorf("create members sheet: %w", err)
	}
	memberHeader := []interface{}{"Name", "Email", "Opted in", "Plan", "Amount", "Last updated"}
	if err := f.SetSheetRow(MembersSheet, "A1", &memberHeader); err != nil {
		return nil, fmt.Errorf("write members header: %w", err)
	}
	for i, m := range members {
		opted := "No"
		if m.OptedIn {
			opted = "Yes"
		}
		line := []interface{}{
			m.Name,
			m.Email,
			opted,
			m.Plan,
			m.Amount.InexactFloat64(),
			m.LastUpdated.Format(time.RFC3339),
		}
		if err := setRow(f, MembersSheet, i+2, line); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func subscribers(s billing.Summary) int {
	n := 0
	for _, l := range s.Lines {
		n += l.Subscribers
	}
	return n
}

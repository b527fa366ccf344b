// Package export writes comparison results to spreadsheet files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
)

const (
	SummarySheet = "Summary"
	SeriesSheet  = "Series"
)

// percentFormat is the builtin "0.00%" number format.
const percentFormat = 10

// XLSX builds a workbook with a Summary sheet and a Series sheet.
func XLSX(ctx context.Context, res *dashboard.Result, logger zerolog.Logger) ([]byte, error) {
	if res == nil || res.Combined.Len() == 0 {
		return nil, errors.New("empty result")
	}
	log := logging.For(ctx, logger)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SeriesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := fillSummary(f, res); err != nil {
		return nil, err
	}
	if err := fillSeries(f, res); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	log.Debug().Int("rows", res.Combined.Len()).Msg("workbook generated")
	return buf.Bytes(), nil
}

// WriteXLSX writes the workbook to path.
func WriteXLSX(ctx context.Context, path string, res *dashboard.Result, logger zerolog.Logger) error {
	data, err := XLSX(ctx, res, logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func fillSummary(f *excelize.File, res *dashboard.Result) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: percentFormat})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	rows := [][]interface{}{
		{"Series", "Symbol", "Start value", "End value", "Cumulative return", "Annualized volatility"},
		{"Portfolio", "", res.Portfolio.StartValue, res.Portfolio.EndValue, res.Portfolio.TotalReturn, res.Portfolio.Volatility},
		{res.Benchmark.Name, res.IndexSymbol, res.Index.StartValue, res.Index.EndValue, res.Index.TotalReturn, res.Index.Volatility},
		{},
		{"Start", res.Start.Format(market.DateLayout)},
		{"End", res.End.Format(market.DateLayout)},
		{"Provider", res.Provider},
		{},
		{"Ticker", "Quantity"},
	}
	for _, h := range res.Holdings {
		rows = append(rows, []interface{}{h.Ticker, h.Shares()})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}

	_ = f.SetCellStyle(SummarySheet, "A1", "F1", header)
	_ = f.SetCellStyle(SummarySheet, "A9", "B9", header)
	_ = f.SetCellStyle(SummarySheet, "E2", "F3", percent)
	_ = f.SetColWidth(SummarySheet, "A", "A", 28)
	_ = f.SetColWidth(SummarySheet, "B", "F", 20)
	return nil
}

func fillSeries(f *excelize.File, res *dashboard.Result) error {
	c := res.Combined
	rows := make([][]interface{}, 0, c.Len()+1)
	rows = append(rows, []interface{}{"Date", "Portfolio value", res.IndexSymbol, "Portfolio return", "Index return"})
	for i, d := range c.Dates {
		rows = append(rows, []interface{}{
			d.Format(market.DateLayout),
			c.Portfolio[i],
			c.Index[i],
			res.Portfolio.CumulativeReturn[i],
			res.Index.CumulativeReturn[i],
		})
	}
	if err := writeRows(f, SeriesSheet, rows); err != nil {
		return err
	}
	_ = f.SetColWidth(SeriesSheet, "A", "E", 18)
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/activity-board/models"
)

const (
	SheetTotals  = "Totals"
	SheetFunnel  = "Funnel"
	SheetRanking = "Ranking"
)

// ContentType is the MIME type of the workbook written by WriteActivity
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteActivity renders an activity report as an XLSX workbook
func WriteActivity(w io.Writer, a models.ActivityResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetTotals); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetFunnel, SheetRanking} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetTotals, [][]any{
		{"metric", "value"},
		{models.LabelTA, a.Totals.TA},
		{models.LabelOT, a.Totals.OT},
		{models.LabelMCS, a.Totals.MCS},
		{models.StageIntroductions, a.Totals.Introductions},
		{"count", a.Totals.Count},
		{"recordCount", a.RecordCount},
	}); err != nil {
		return err
	}

	funnel := [][]any{{"stage", "value", "rate"}}
	for _, s := range a.Funnel {
		funnel = append(funnel, []any{s.Stage, s.Value, s.Rate})
	}
	if err := writeRows(f, SheetFunnel, funnel); err != nil {
		return err
	}

	metrics := make([]string, 0, len(a.Ranking))
	for metric := range a.Ranking {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	ranking := [][]any{{"metric", "tier", "value", "members"}}
	for _, metric := range metrics {
		r := a.Ranking[metric]
		if len(r.First) > 0 {
			ranking = append(ranking, []any{metric, 1, r.FirstValue, joinIDs(r.First)})
		}
		if len(r.Second) > 0 {
			ranking = append(ranking, []any{metric, 2, r.SecondValue, joinIDs(r.Second)})
		}
	}
	if err := writeRows(f, SheetRanking, ranking); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell on %s: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

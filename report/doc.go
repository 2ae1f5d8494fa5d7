// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report exports activity figures as an XLSX workbook with
// Totals, Funnel and Ranking sheets.
package report

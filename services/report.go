package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"ubi-analysis/models"
)

// ReportPrinter renders a terminal summary of an Analysis.
type ReportPrinter struct {
	out io.Writer
}

func NewReportPrinter(out io.Writer) *ReportPrinter {
	return &ReportPrinter{out: out}
}

func (p *ReportPrinter) Print(a *Analysis) error {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)
	w := &errWriter{w: p.out}

	w.printf("\n\033[1;35m%s\033[0m\n", sep)
	w.printf("\033[1;35m  UBI STEADY-STATE COMPARISON\033[0m\n")
	w.printf("\033[1;35m%s\033[0m\n\n", sep)

	if a.Total == nil || a.Total.Len() == 0 {
		w.printf("  No economy-wide results\n")
		return w.err
	}
	total := a.Total.Rows[0]

	w.printf("\033[1;33m  Economy-wide (per person)\033[0m\n")
	w.printf("  %s\n", thin)
	w.printf("  Implied UBI             : \033[1;32m$%s\033[0m\n", p.cell(a.Total, total, ColUBI, "%.2f"))
	w.printf("  After-tax income        : $%s\n", p.cell(a.Total, total, ColAfterTaxIncome, "%.2f"))
	w.printf("  Income effect           : %s\n", p.cell(a.Total, total, ColIncomeEffect, "%.4f"))
	w.printf("  Labor supply change     : %s%%\n", p.cell(a.Total, total, ColLaborPctChange+displaySuffix, "%.2f"))
	w.printf("  Consumption change      : %s%%\n", p.cell(a.Total, total, ColConsPctChange+displaySuffix, "%.2f"))
	w.printf("  Implied elasticity      : \033[1m%s\033[0m\n", p.cell(a.Total, total, ColElasticity, "%.3f"))
	w.printf("\n")

	w.printf("\033[1;33m  By lifetime-income group\033[0m\n")
	w.printf("  %s\n", thin)
	if a.ByGroup == nil || a.ByGroup.Len() == 0 {
		w.printf("  No income-group results\n")
	} else {
		w.printf("  %-10s %12s %12s %10s %12s\n", "group", "ubi", "after-tax", "labor %", "elasticity")
		for _, r := range a.ByGroup.Rows {
			w.printf("  %-10s %12s %12s %10s %12s\n",
				r.Group,
				p.cell(a.ByGroup, r, ColUBI, "%.2f"),
				p.cell(a.ByGroup, r, ColAfterTaxIncome, "%.2f"),
				p.cell(a.ByGroup, r, ColLaborPctChange+displaySuffix, "%.2f"),
				p.cell(a.ByGroup, r, ColElasticity, "%.3f"))
		}
	}

	w.printf("\n\033[1;35m%s\033[0m\n\n", sep)
	return w.err
}

// cell formats one value, spelling out non-finite results.
func (p *ReportPrinter) cell(t *models.Table, r *models.Row, col, format string) string {
	i, ok := t.Index(col)
	if !ok {
		return "n/a"
	}
	v := r.Values[i]
	switch {
	case math.IsNaN(v):
		return "undefined"
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf(format, v)
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

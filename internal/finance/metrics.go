// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package finance derives profitability metrics, quarterly rollups, and
// bank-statement variance analysis from monthly check-in figures.
package finance

import (
	"math"
	"sort"

	"growthdesk/internal/models"
)

// Metrics are the derived figures for a single monthly check-in. Margins
// are percentages and guard against zero turnover; the working capital
// ratio is 0 when there are no creditors.
type Metrics struct {
	GrossProfit         float64 `json:"gross_profit"`
	GPMargin            float64 `json:"gp_margin"`
	NetProfit           float64 `json:"net_profit"`
	NPMargin            float64 `json:"np_margin"`
	WorkingCapitalRatio float64 `json:"working_capital_ratio"`
}

// Compute derives the metrics for one check-in.
func Compute(c models.CheckIn) Metrics {
	m := Metrics{
		GrossProfit: c.Turnover - c.CostOfSales,
	}
	m.NetProfit = m.GrossProfit - c.BusinessExpenses

	if c.Turnover != 0 {
		m.GPMargin = m.GrossProfit / c.Turnover * 100
		m.NPMargin = m.NetProfit / c.Turnover * 100
	}
	if c.Creditors != 0 {
		m.WorkingCapitalRatio = (c.CashOnHand + c.Debtors + c.Inventory) / c.Creditors
	}
	return m
}

// QuarterSummary is the rollup of all check-ins falling in one calendar
// quarter. Turnover and profits are sums; CashPosition is the maximum
// cash on hand seen in the quarter, approximating a latest-snapshot view;
// AverageMargin is the arithmetic mean of the check-ins' own net profit
// margins, not a margin recomputed from the summed totals. The two are
// not equivalent and the mean-of-ratios convention is deliberate.
type QuarterSummary struct {
	Year          int     `json:"year"`
	Quarter       int     `json:"quarter"`
	CheckIns      int     `json:"check_ins"`
	Turnover      float64 `json:"turnover"`
	GrossProfit   float64 `json:"gross_profit"`
	NetProfit     float64 `json:"net_profit"`
	CashPosition  float64 `json:"cash_position"`
	AverageMargin float64 `json:"average_margin"`
}

// QuarterlySummaries groups check-ins by calendar quarter and rolls each
// group up, returning summaries in chronological order.
func QuarterlySummaries(checkIns []models.CheckIn) []QuarterSummary {
	type quarterKey struct {
		year, quarter int
	}

	groups := make(map[quarterKey]*QuarterSummary)
	marginSums := make(map[quarterKey]float64)

	for _, c := range checkIns {
		key := quarterKey{c.Year, c.Quarter()}
		s, ok := groups[key]
		if !ok {
			s = &QuarterSummary{Year: key.year, Quarter: key.quarter}
			groups[key] = s
		}

		m := Compute(c)
		s.CheckIns++
		s.Turnover += c.Turnover
		s.GrossProfit += m.GrossProfit
		s.NetProfit += m.NetProfit
		// Seed the max from the first check-in: cash on hand can be
		// negative (overdraft), so starting from 0 would clamp it.
		if s.CheckIns == 1 {
			s.CashPosition = c.CashOnHand
		} else {
			s.CashPosition = math.Max(s.CashPosition, c.CashOnHand)
		}
		marginSums[key] += m.NPMargin
	}

	out := make([]QuarterSummary, 0, len(groups))
	for key, s := range groups {
		s.AverageMargin = marginSums[key] / float64(s.CheckIns)
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Quarter < out[j].Quarter
	})
	return out
}

// SignificantVariancePct is the threshold above which a month's turnover
// variance against the bank statement is flagged.
const SignificantVariancePct = 15.0

// VarianceEntry compares one month's self-reported turnover against the
// independently captured bank income for the same month.
type VarianceEntry struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	CheckInTurnover float64 `json:"check_in_turnover"`
	BankIncome      float64 `json:"bank_income"`
	VariancePct     float64 `json:"variance_pct"`
	Significant     bool    `json:"significant"`
}

// VarianceReport cross-validates the check-in series against the bank
// statement series. Only months present in both series are compared;
// missing months are excluded rather than treated as zero variance.
// Months whose bank income is 0 are also excluded, since a percentage
// needs a denominator. Entries come back in chronological order.
func VarianceReport(checkIns []models.CheckIn, statements []models.BankStatement) []VarianceEntry {
	type monthKey struct {
		year, month int
	}

	income := make(map[monthKey]float64, len(statements))
	for _, s := range statements {
		income[monthKey{s.Year, s.Month}] = s.Income
	}

	var out []VarianceEntry
	for _, c := range checkIns {
		bank, ok := income[monthKey{c.Year, c.Month}]
		if !ok || bank == 0 {
			continue
		}

		pct := math.Abs(c.Turnover-bank) / bank * 100
		out = append(out, VarianceEntry{
			Year:            c.Year,
			Month:           c.Month,
			CheckInTurnover: c.Turnover,
			BankIncome:      bank,
			VariancePct:     pct,
			Significant:     pct > SignificantVariancePct,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

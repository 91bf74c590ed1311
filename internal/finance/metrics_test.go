// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package finance

import (
	"math"
	"testing"

	"growthdesk/internal/models"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_DerivesMargins(t *testing.T) {
	m := Compute(models.CheckIn{
		Turnover:         100000,
		CostOfSales:      60000,
		BusinessExpenses: 25000,
		CashOnHand:       20000,
		Debtors:          15000,
		Inventory:        5000,
		Creditors:        10000,
	})

	if m.GrossProfit != 40000 {
		t.Errorf("GrossProfit = %v, want 40000", m.GrossProfit)
	}
	if !closeTo(m.GPMargin, 40) {
		t.Errorf("GPMargin = %v, want 40", m.GPMargin)
	}
	if m.NetProfit != 15000 {
		t.Errorf("NetProfit = %v, want 15000", m.NetProfit)
	}
	if !closeTo(m.NPMargin, 15) {
		t.Errorf("NPMargin = %v, want 15", m.NPMargin)
	}
	if !closeTo(m.WorkingCapitalRatio, 4) {
		t.Errorf("WorkingCapitalRatio = %v, want 4", m.WorkingCapitalRatio)
	}
}

func TestCompute_ZeroTurnoverGivesZeroMargins(t *testing.T) {
	m := Compute(models.CheckIn{
		Turnover:         0,
		CostOfSales:      5000,
		BusinessExpenses: 2000,
	})

	if m.GPMargin != 0 || m.NPMargin != 0 {
		t.Errorf("margins = %v/%v, want 0/0 with no turnover", m.GPMargin, m.NPMargin)
	}
	// The absolute figures are still reported.
	if m.GrossProfit != -5000 || m.NetProfit != -7000 {
		t.Errorf("profits = %v/%v, want -5000/-7000", m.GrossProfit, m.NetProfit)
	}
}

func TestCompute_ZeroCreditorsGivesZeroRatio(t *testing.T) {
	m := Compute(models.CheckIn{CashOnHand: 10000, Debtors: 5000, Creditors: 0})
	if m.WorkingCapitalRatio != 0 {
		t.Errorf("WorkingCapitalRatio = %v, want 0 with no creditors", m.WorkingCapitalRatio)
	}
}

func TestQuarterlySummaries_RollsUpByQuarter(t *testing.T) {
	checkIns := []models.CheckIn{
		{Year: 2026, Month: 1, Turnover: 100000, CostOfSales: 50000, BusinessExpenses: 30000, CashOnHand: 12000},
		{Year: 2026, Month: 2, Turnover: 50000, CostOfSales: 20000, BusinessExpenses: 20000, CashOnHand: 30000},
		{Year: 2026, Month: 3, Turnover: 80000, CostOfSales: 40000, BusinessExpenses: 16000, CashOnHand: 18000},
		{Year: 2026, Month: 4, Turnover: 90000, CostOfSales: 45000, BusinessExpenses: 27000, CashOnHand: 22000},
	}

	got := QuarterlySummaries(checkIns)
	if len(got) != 2 {
		t.Fatalf("got %d quarters, want 2", len(got))
	}

	q1 := got[0]
	if q1.Year != 2026 || q1.Quarter != 1 || q1.CheckIns != 3 {
		t.Fatalf("first summary = %+v", q1)
	}
	if q1.Turnover != 230000 {
		t.Errorf("Q1 turnover = %v, want 230000", q1.Turnover)
	}
	if q1.NetProfit != 50000 {
		t.Errorf("Q1 net profit = %v, want 50000", q1.NetProfit)
	}
	// Max cash on hand across the quarter, not the sum or the last month.
	if q1.CashPosition != 30000 {
		t.Errorf("Q1 cash position = %v, want 30000", q1.CashPosition)
	}
	// Mean of the monthly margins (20%, 20%, 30%), not 50000/230000.
	if !closeTo(q1.AverageMargin, (20.0+20.0+30.0)/3) {
		t.Errorf("Q1 average margin = %v, want mean of monthly margins", q1.AverageMargin)
	}

	if got[1].Quarter != 2 || got[1].CheckIns != 1 {
		t.Errorf("second summary = %+v, want Q2 with one check-in", got[1])
	}
}

func TestQuarterlySummaries_CashPositionAllowsOverdraft(t *testing.T) {
	// Every month of the quarter is in overdraft; the cash position is
	// the least negative balance, not 0.
	checkIns := []models.CheckIn{
		{Year: 2026, Month: 1, CashOnHand: -500},
		{Year: 2026, Month: 2, CashOnHand: -100},
		{Year: 2026, Month: 3, CashOnHand: -300},
	}

	got := QuarterlySummaries(checkIns)
	if len(got) != 1 {
		t.Fatalf("got %d quarters, want 1", len(got))
	}
	if got[0].CashPosition != -100 {
		t.Errorf("CashPosition = %v, want -100 (max of the quarter)", got[0].CashPosition)
	}
}

func TestQuarterlySummaries_ChronologicalAcrossYears(t *testing.T) {
	checkIns := []models.CheckIn{
		{Year: 2026, Month: 2, Turnover: 1},
		{Year: 2025, Month: 11, Turnover: 1},
		{Year: 2025, Month: 5, Turnover: 1},
	}

	got := QuarterlySummaries(checkIns)
	if len(got) != 3 {
		t.Fatalf("got %d quarters, want 3", len(got))
	}
	wantOrder := [][2]int{{2025, 2}, {2025, 4}, {2026, 1}}
	for i, w := range wantOrder {
		if got[i].Year != w[0] || got[i].Quarter != w[1] {
			t.Errorf("summary[%d] = %d Q%d, want %d Q%d", i, got[i].Year, got[i].Quarter, w[0], w[1])
		}
	}
}

func TestQuarterlySummaries_Empty(t *testing.T) {
	if got := QuarterlySummaries(nil); len(got) != 0 {
		t.Errorf("got %d summaries from no check-ins", len(got))
	}
}

func TestVarianceReport_ComparesOverlappingMonthsOnly(t *testing.T) {
	checkIns := []models.CheckIn{
		{Year: 2026, Month: 1, Turnover: 100000}, // matched, within threshold
		{Year: 2026, Month: 2, Turnover: 150000}, // matched, significant
		{Year: 2026, Month: 3, Turnover: 90000},  // no statement
	}
	statements := []models.BankStatement{
		{Year: 2026, Month: 1, Income: 95000},
		{Year: 2026, Month: 2, Income: 100000},
		{Year: 2026, Month: 4, Income: 70000}, // no check-in
	}

	got := VarianceReport(checkIns, statements)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2 overlapping months", len(got))
	}

	jan := got[0]
	if jan.Month != 1 || jan.Significant {
		t.Errorf("january = %+v, want variance below threshold", jan)
	}
	if !closeTo(jan.VariancePct, 5000.0/95000*100) {
		t.Errorf("january variance = %v", jan.VariancePct)
	}

	feb := got[1]
	if feb.Month != 2 || !feb.Significant {
		t.Errorf("february = %+v, want significant variance", feb)
	}
	if !closeTo(feb.VariancePct, 50) {
		t.Errorf("february variance = %v, want 50", feb.VariancePct)
	}
}

func TestVarianceReport_ThresholdIsExclusive(t *testing.T) {
	// Exactly 15% is not significant; the threshold is strictly greater.
	got := VarianceReport(
		[]models.CheckIn{{Year: 2026, Month: 1, Turnover: 115000}},
		[]models.BankStatement{{Year: 2026, Month: 1, Income: 100000}},
	)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Significant {
		t.Errorf("variance of exactly %v%% flagged significant", got[0].VariancePct)
	}
}

func TestVarianceReport_SkipsZeroBankIncome(t *testing.T) {
	got := VarianceReport(
		[]models.CheckIn{{Year: 2026, Month: 1, Turnover: 50000}},
		[]models.BankStatement{{Year: 2026, Month: 1, Income: 0}},
	)
	if len(got) != 0 {
		t.Errorf("got %d entries, want none when bank income is 0", len(got))
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is one month of self-reported financial figures for a company.
// All monetary values are in rand.
type CheckIn struct {
	ID        uuid.UUID `json:"id"`
	CompanyID int64     `json:"company_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"` // 1..12

	Turnover         float64 `json:"turnover"`
	CostOfSales      float64 `json:"cost_of_sales"`
	BusinessExpenses float64 `json:"business_expenses"`
	CashOnHand       float64 `json:"cash_on_hand"`
	Debtors          float64 `json:"debtors"`
	Creditors        float64 `json:"creditors"`
	Inventory        float64 `json:"inventory"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quarter returns the calendar quarter (1..4) the check-in's month falls in.
func (c *CheckIn) Quarter() int {
	return (c.Month-1)/3 + 1
}

// BankStatement is one month of independently captured bank figures for a
// company, used to cross-validate the self-reported check-in series.
type BankStatement struct {
	ID        uuid.UUID `json:"id"`
	CompanyID int64     `json:"company_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"` // 1..12

	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`

	CreatedAt time.Time `json:"created_at"`
}

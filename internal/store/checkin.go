// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"growthdesk/internal/models"
)

// CheckInStore manages monthly financial check-ins and their independent
// bank-statement counterparts.
type CheckInStore struct {
	db *sql.DB
}

// NewCheckInStore returns a new CheckInStore.
func NewCheckInStore(db *sql.DB) *CheckInStore {
	return &CheckInStore{db: db}
}

const checkInColumns = `id, company_id, year, month, turnover, cost_of_sales,
	business_expenses, cash_on_hand, debtors, creditors, inventory,
	created_at, updated_at`

func scanCheckIn(scanner interface{ Scan(...any) error }) (*models.CheckIn, error) {
	var c models.CheckIn
	err := scanner.Scan(
		&c.ID, &c.CompanyID, &c.Year, &c.Month,
		&c.Turnover, &c.CostOfSales, &c.BusinessExpenses,
		&c.CashOnHand, &c.Debtors, &c.Creditors, &c.Inventory,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts a check-in, or replaces the figures for an existing
// (company, year, month) entry.
func (s *CheckInStore) Upsert(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error) {
	if c.Month < 1 || c.Month > 12 {
		return nil, fmt.Errorf("upsert check-in: month %d out of range", c.Month)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO check_ins (company_id, year, month, turnover, cost_of_sales,
		                       business_expenses, cash_on_hand, debtors, creditors, inventory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			turnover = EXCLUDED.turnover,
			cost_of_sales = EXCLUDED.cost_of_sales,
			business_expenses = EXCLUDED.business_expenses,
			cash_on_hand = EXCLUDED.cash_on_hand,
			debtors = EXCLUDED.debtors,
			creditors = EXCLUDED.creditors,
			inventory = EXCLUDED.inventory,
			updated_at = NOW()
		RETURNING `+checkInColumns,
		c.CompanyID, c.Year, c.Month, c.Turnover, c.CostOfSales,
		c.BusinessExpenses, c.CashOnHand, c.Debtors, c.Creditors, c.Inventory,
	)
	result, err := scanCheckIn(row)
	if err != nil {
		return nil, fmt.Errorf("upsert check-in: %w", err)
	}
	return result, nil
}

// ListByCompany returns a company's check-ins in chronological order.
func (s *CheckInStore) ListByCompany(ctx context.Context, companyID int64) ([]models.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins
		WHERE company_id = $1
		ORDER BY year, month
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	var items []models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// UpsertBankStatement inserts a bank statement, or replaces the figures
// for an existing (company, year, month) entry.
func (s *CheckInStore) UpsertBankStatement(ctx context.Context, b *models.BankStatement) (*models.BankStatement, error) {
	if b.Month < 1 || b.Month > 12 {
		return nil, fmt.Errorf("upsert bank statement: month %d out of range", b.Month)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO bank_statements (company_id, year, month, income, expenses)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			income = EXCLUDED.income,
			expenses = EXCLUDED.expenses
		RETURNING id, company_id, year, month, income, expenses, created_at
	`, b.CompanyID, b.Year, b.Month, b.Income, b.Expenses)

	var result models.BankStatement
	err := row.Scan(
		&result.ID, &result.CompanyID, &result.Year, &result.Month,
		&result.Income, &result.Expenses, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert bank statement: %w", err)
	}
	return &result, nil
}

// ListBankStatements returns a company's bank statements in chronological
// order.
func (s *CheckInStore) ListBankStatements(ctx context.Context, companyID int64) ([]models.BankStatement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, year, month, income, expenses, created_at
		FROM bank_statements
		WHERE company_id = $1
		ORDER BY year, month
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bank statements: %w", err)
	}
	defer rows.Close()

	var items []models.BankStatement
	for rows.Next() {
		var b models.BankStatement
		err := rows.Scan(&b.ID, &b.CompanyID, &b.Year, &b.Month, &b.Income, &b.Expenses, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan bank statement: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

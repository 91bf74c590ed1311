package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with a small development hierarchy: one
// client with two programs, two cohorts each, and a handful of companies
// attached to the first cohort. It is a no-op when categories already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var clientID int64
	err = tx.QueryRow(`
		INSERT INTO categories (name, description, type)
		VALUES ('Acme Development Agency', 'Demo client', 'client')
		RETURNING id
	`).Scan(&clientID)
	if err != nil {
		return fmt.Errorf("seed insert client: %w", err)
	}

	var cohortID int64
	for _, program := range []string{"Supplier Development 2026", "Enterprise Accelerator"} {
		var programID int64
		err = tx.QueryRow(`
			INSERT INTO categories (name, type, parent_id)
			VALUES ($1, 'program', $2)
			RETURNING id
		`, program, clientID).Scan(&programID)
		if err != nil {
			return fmt.Errorf("seed insert program: %w", err)
		}

		for _, cohort := range []string{"Cohort A", "Cohort B"} {
			var id int64
			err = tx.QueryRow(`
				INSERT INTO categories (name, type, parent_id)
				VALUES ($1, 'cohort', $2)
				RETURNING id
			`, cohort, programID).Scan(&id)
			if err != nil {
				return fmt.Errorf("seed insert cohort: %w", err)
			}
			if cohortID == 0 {
				cohortID = id
			}
		}
	}

	companies := []struct {
		name, city string
		turnover   float64
		cipc       bool
	}{
		{"Thandi Catering", "Johannesburg", 420000, true},
		{"Mzansi Logistics", "Durban", 1250000, true},
		{"Karoo Crafts", "Beaufort West", 98000, false},
		{"Ubuntu IT Services", "Cape Town", 760000, true},
	}

	for i, c := range companies {
		var companyID int64
		err = tx.QueryRow(`
			INSERT INTO companies (name, city, business_location, turnover_estimated,
			                       has_cipc_registration, has_tax_clearance)
			VALUES ($1, $2, $2, $3, $4, false)
			RETURNING id
		`, c.name, c.city, c.turnover, c.cipc).Scan(&companyID)
		if err != nil {
			return fmt.Errorf("seed insert company: %w", err)
		}

		// Attach the first three companies to the first cohort with a
		// spread of statuses; leave the last unassigned for picker demos.
		if i < 3 {
			status := []string{"active", "active", "completed"}[i]
			_, err = tx.Exec(`
				INSERT INTO cohort_companies (cohort_id, company_id, status)
				VALUES ($1, $2, $3)
			`, cohortID, companyID, status)
			if err != nil {
				return fmt.Errorf("seed attach company: %w", err)
			}

			_, err = tx.Exec(`
				INSERT INTO check_ins (company_id, year, month, turnover, cost_of_sales,
				                       business_expenses, cash_on_hand, debtors, creditors, inventory)
				VALUES ($1, 2026, $2, $3, $4, $5, $6, 15000, 9000, 22000)
			`, companyID, i+1, c.turnover/12, c.turnover/24, c.turnover/48, 30000+float64(i)*10000)
			if err != nil {
				return fmt.Errorf("seed insert check-in: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo hierarchy", "client_id", clientID)
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"growthdesk/internal/hierarchy"
	"growthdesk/internal/models"
)

// CompanyStore manages companies and their cohort memberships.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore returns a new CompanyStore.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

const companyColumns = `c.id, c.name, c.registration_number, c.email, c.phone,
	c.contact_person, c.city, c.business_location, c.description,
	c.turnover_estimated, c.has_cipc_registration, c.has_tax_clearance,
	c.has_valid_bbbee, c.created_at, c.updated_at`

// scanCompany scans a company row. When withStatus is true the row carries
// a trailing nullable membership status column.
func scanCompany(scanner interface{ Scan(...any) error }, withStatus bool) (*models.Company, error) {
	var (
		c        models.Company
		turnover sql.NullFloat64
		cipc     sql.NullBool
		tax      sql.NullBool
		bbbee    sql.NullBool
		status   sql.NullString
	)

	dest := []any{
		&c.ID, &c.Name, &c.RegistrationNumber, &c.Email, &c.Phone,
		&c.ContactPerson, &c.City, &c.BusinessLocation, &c.Description,
		&turnover, &cipc, &tax, &bbbee, &c.CreatedAt, &c.UpdatedAt,
	}
	if withStatus {
		dest = append(dest, &status)
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	if turnover.Valid {
		c.TurnoverEstimated = &turnover.Float64
	}
	if cipc.Valid {
		c.HasCIPCRegistration = &cipc.Bool
	}
	if tax.Valid {
		c.HasTaxClearance = &tax.Bool
	}
	if bbbee.Valid {
		c.HasValidBBBEE = &bbbee.Bool
	}
	if status.Valid {
		ms := models.MembershipStatus(status.String)
		c.MembershipStatus = &ms
	}
	return &c, nil
}

// List returns all companies ordered by name.
func (s *CompanyStore) List(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+companyColumns+` FROM companies c ORDER BY c.name, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var items []models.Company
	for rows.Next() {
		c, err := scanCompany(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a company by ID. Returns nil if not found.
func (s *CompanyStore) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+companyColumns+` FROM companies c WHERE c.id = $1
	`, id)
	c, err := scanCompany(row, false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company by id: %w", err)
	}
	return c, nil
}

// Create inserts a new company and returns it.
func (s *CompanyStore) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO companies (name, registration_number, email, phone, contact_person,
		                       city, business_location, description, turnover_estimated,
		                       has_cipc_registration, has_tax_clearance, has_valid_bbbee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+companyColumns+`
	`,
		c.Name, c.RegistrationNumber, c.Email, c.Phone, c.ContactPerson,
		c.City, c.BusinessLocation, c.Description, c.TurnoverEstimated,
		c.HasCIPCRegistration, c.HasTaxClearance, c.HasValidBBBEE,
	)
	result, err := scanCompany(row, false)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return result, nil
}

// ListAssigned returns the companies attached to a cohort, with their
// membership status, ordered by name.
func (s *CompanyStore) ListAssigned(ctx context.Context, cohortID int64) ([]models.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+companyColumns+`, cc.status
		FROM companies c
		JOIN cohort_companies cc ON cc.company_id = c.id
		WHERE cc.cohort_id = $1
		ORDER BY c.name, c.id
	`, cohortID)
	if err != nil {
		return nil, fmt.Errorf("list assigned companies: %w", err)
	}
	defer rows.Close()

	var items []models.Company
	for rows.Next() {
		c, err := scanCompany(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan assigned company: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// ListCohortCompanies runs the combined membership query: one round trip
// producing both the assigned and the available pane, so the two lists
// always reflect a single point in time. Assigned companies are returned
// unfiltered; the available side honors the query's scope and search.
//
// Scoping: with a program or client id present, only companies already
// participating somewhere under that ancestor, or not attached anywhere
// yet, qualify as available. The deepest provided ancestor wins.
func (s *CompanyStore) ListCohortCompanies(ctx context.Context, q hierarchy.AvailableQuery) (hierarchy.CohortCompanies, error) {
	var scopeID *int64
	if q.ProgramID != nil {
		scopeID = q.ProgramID
	} else if q.ClientID != nil {
		scopeID = q.ClientID
	}

	pattern := "%" + q.Search + "%"

	rows, err := s.db.QueryContext(ctx, `
		WITH RECURSIVE scope AS (
			SELECT id, type FROM categories WHERE id = $2
			UNION ALL
			SELECT c.id, c.type FROM categories c JOIN scope s ON c.parent_id = s.id
		)
		SELECT `+companyColumns+`, cc.status, (cc.company_id IS NOT NULL) AS assigned
		FROM companies c
		LEFT JOIN cohort_companies cc
		       ON cc.cohort_id = $1 AND cc.company_id = c.id
		WHERE cc.company_id IS NOT NULL
		   OR (
		        ($2::BIGINT IS NULL
		         OR NOT EXISTS (SELECT 1 FROM cohort_companies x WHERE x.company_id = c.id)
		         OR EXISTS (
		              SELECT 1 FROM cohort_companies x
		              JOIN scope sc ON sc.id = x.cohort_id AND sc.type = 'cohort'
		              WHERE x.company_id = c.id
		            ))
		        AND ($3 = '' OR c.name ILIKE $4 OR c.contact_person ILIKE $4
		             OR c.registration_number ILIKE $4 OR c.city ILIKE $4)
		      )
		ORDER BY c.name, c.id
	`, q.CohortID, scopeID, q.Search, pattern)
	if err != nil {
		return hierarchy.CohortCompanies{}, fmt.Errorf("list cohort companies: %w", err)
	}
	defer rows.Close()

	var out hierarchy.CohortCompanies
	for rows.Next() {
		var (
			c        models.Company
			turnover sql.NullFloat64
			cipc     sql.NullBool
			tax      sql.NullBool
			bbbee    sql.NullBool
			status   sql.NullString
			assigned bool
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.RegistrationNumber, &c.Email, &c.Phone,
			&c.ContactPerson, &c.City, &c.BusinessLocation, &c.Description,
			&turnover, &cipc, &tax, &bbbee, &c.CreatedAt, &c.UpdatedAt,
			&status, &assigned,
		)
		if err != nil {
			return hierarchy.CohortCompanies{}, fmt.Errorf("scan cohort company: %w", err)
		}
		if turnover.Valid {
			c.TurnoverEstimated = &turnover.Float64
		}
		if cipc.Valid {
			c.HasCIPCRegistration = &cipc.Bool
		}
		if tax.Valid {
			c.HasTaxClearance = &tax.Bool
		}
		if bbbee.Valid {
			c.HasValidBBBEE = &bbbee.Bool
		}
		if status.Valid {
			ms := models.MembershipStatus(status.String)
			c.MembershipStatus = &ms
		}

		if assigned {
			out.Assigned = append(out.Assigned, c)
		} else {
			out.Available = append(out.Available, c)
		}
	}
	return out, rows.Err()
}

// ListAvailable returns only the available pane of the combined query.
func (s *CompanyStore) ListAvailable(ctx context.Context, q hierarchy.AvailableQuery) ([]models.Company, error) {
	both, err := s.ListCohortCompanies(ctx, q)
	if err != nil {
		return nil, err
	}
	return both.Available, nil
}

// Attach links a company to a cohort. Attaching twice is a no-op.
func (s *CompanyStore) Attach(ctx context.Context, cohortID, companyID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cohort_companies (cohort_id, company_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, cohortID, companyID)
	if err != nil {
		return fmt.Errorf("attach company: %w", err)
	}
	return nil
}

// Detach removes the link between a company and a cohort.
func (s *CompanyStore) Detach(ctx context.Context, cohortID, companyID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM cohort_companies WHERE cohort_id = $1 AND company_id = $2
	`, cohortID, companyID)
	if err != nil {
		return fmt.Errorf("detach company: %w", err)
	}
	return nil
}

// SetMembershipStatus updates a membership's status. A nil status clears it.
func (s *CompanyStore) SetMembershipStatus(ctx context.Context, cohortID, companyID int64, status *models.MembershipStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE cohort_companies SET status = $3
		WHERE cohort_id = $1 AND company_id = $2
	`, cohortID, companyID, status)
	if err != nil {
		return fmt.Errorf("set membership status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set membership status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set membership status: company %d is not attached to cohort %d", companyID, cohortID)
	}
	return nil
}

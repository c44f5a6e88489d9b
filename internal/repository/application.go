package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jobtracker/jobtracker/internal/model"
)

// ErrApplicationNotFound is returned when no application matches both the
// id and the owner.
var ErrApplicationNotFound = errors.New("application not found")

const applicationColumns = `
	a.id, a.owner_id, a.company_name, a.position_title, a.location, a.work_mode,
	a.source, a.posting_url, a.salary_min, a.salary_max, a.status,
	a.application_date, a.next_step_date, a.created_at, a.updated_at`

// ListApplications returns the owner's applications in creation order.
func (q *Queries) ListApplications(ctx context.Context, ownerEmail string) ([]*model.Application, error) {
	query := `
		SELECT` + applicationColumns + `
		FROM applications a
		JOIN accounts u ON u.id = a.owner_id
		WHERE u.email = $1
		ORDER BY a.id
	`

	rows, err := q.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

// FindApplication retrieves an application by id only if it is owned by
// the account with ownerEmail.
func (q *Queries) FindApplication(ctx context.Context, id int64, ownerEmail string) (*model.Application, error) {
	query := `
		SELECT` + applicationColumns + `
		FROM applications a
		JOIN accounts u ON u.id = a.owner_id
		WHERE a.id = $1 AND u.email = $2
	` + q.lockClause("a")

	app, err := scanApplication(q.db.QueryRow(ctx, query, id, ownerEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	return app, nil
}

// CreateApplication inserts app and fills in ID, CreatedAt and UpdatedAt.
func (q *Queries) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			owner_id, company_name, position_title, location, work_mode, source, posting_url,
			salary_min, salary_max, status, application_date, next_step_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := q.db.QueryRow(ctx, query,
		app.OwnerID,
		app.CompanyName,
		app.PositionTitle,
		app.Location,
		workModeArg(app.WorkMode),
		app.Source,
		app.PostingURL,
		app.SalaryMin,
		app.SalaryMax,
		string(app.Status),
		app.ApplicationDate.Time,
		dateArg(app.NextStepDate),
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// UpdateApplication overwrites every mutable column of app and refreshes
// UpdatedAt.
func (q *Queries) UpdateApplication(ctx context.Context, app *model.Application) error {
	query := `
		UPDATE applications
		SET company_name = $2, position_title = $3, location = $4, work_mode = $5,
		    source = $6, posting_url = $7, salary_min = $8, salary_max = $9,
		    status = $10, application_date = $11, next_step_date = $12,
		    updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.db.QueryRow(ctx, query,
		app.ID,
		app.CompanyName,
		app.PositionTitle,
		app.Location,
		workModeArg(app.WorkMode),
		app.Source,
		app.PostingURL,
		app.SalaryMin,
		app.SalaryMax,
		string(app.Status),
		app.ApplicationDate.Time,
		dateArg(app.NextStepDate),
	).Scan(&app.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update application: %w", err)
	}

	return nil
}

// DeleteApplication removes an application. Its notes are removed by the
// foreign key cascade.
func (q *Queries) DeleteApplication(ctx context.Context, id int64) error {
	result, err := q.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// scanApplication scans a single row into an Application model.
func scanApplication(row pgx.Row) (*model.Application, error) {
	var (
		app          model.Application
		workMode     *string
		status       string
		appliedOn    time.Time
		nextStepDate *time.Time
	)

	err := row.Scan(
		&app.ID,
		&app.OwnerID,
		&app.CompanyName,
		&app.PositionTitle,
		&app.Location,
		&workMode,
		&app.Source,
		&app.PostingURL,
		&app.SalaryMin,
		&app.SalaryMax,
		&status,
		&appliedOn,
		&nextStepDate,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if workMode != nil {
		mode := model.WorkMode(*workMode)
		app.WorkMode = &mode
	}
	app.Status = model.Status(status)
	app.ApplicationDate = model.DateOf(appliedOn)
	if nextStepDate != nil {
		d := model.DateOf(*nextStepDate)
		app.NextStepDate = &d
	}

	return &app, nil
}

func workModeArg(m *model.WorkMode) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func dateArg(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

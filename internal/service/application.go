package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// ApplicationService handles application business logic. Every operation
// is scoped to the subject (account email) passed in by the caller.
type ApplicationService struct {
	store   Store
	metrics metrics.Recorder
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(store Store, recorder metrics.Recorder) *ApplicationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ApplicationService{store: store, metrics: recorder}
}

// ApplicationInput carries every mutable field of an application. On
// update, nil optional fields clear the stored value.
type ApplicationInput struct {
	CompanyName     string
	PositionTitle   string
	Location        *string
	WorkMode        *model.WorkMode
	Source          *string
	PostingURL      *string
	SalaryMin       *int32
	SalaryMax       *int32
	Status          model.Status
	ApplicationDate *model.Date
	NextStepDate    *model.Date
}

// Validate checks required fields and enum values. Salary bounds and date
// order are not cross-checked.
func (in ApplicationInput) Validate() error {
	errs := fieldErrors{}
	errs.require(strings.TrimSpace(in.CompanyName) != "", "companyName", "Company name is required")
	errs.require(strings.TrimSpace(in.PositionTitle) != "", "positionTitle", "Position title is required")
	errs.require(in.Status != "", "status", "Status is required")
	errs.require(in.Status == "" || in.Status.IsValid(), "status",
		"Status must be one of APPLIED, INTERVIEWING, OFFER, ACCEPTED, REJECTED, WITHDRAWN")
	errs.require(in.ApplicationDate != nil, "applicationDate", "Application date is required")
	errs.require(in.WorkMode == nil || in.WorkMode.IsValid(), "workMode",
		"Work mode must be one of ONSITE, REMOTE, HYBRID")
	return errs.err()
}

// applyTo overwrites every mutable field of app.
func (in ApplicationInput) applyTo(app *model.Application) {
	app.CompanyName = in.CompanyName
	app.PositionTitle = in.PositionTitle
	app.Location = in.Location
	app.WorkMode = in.WorkMode
	app.Source = in.Source
	app.PostingURL = in.PostingURL
	app.SalaryMin = in.SalaryMin
	app.SalaryMax = in.SalaryMax
	app.Status = in.Status
	app.ApplicationDate = *in.ApplicationDate
	app.NextStepDate = in.NextStepDate
}

// List returns the subject's applications in creation order.
func (s *ApplicationService) List(ctx context.Context, subject string) ([]*model.Application, error) {
	var apps []*model.Application
	err := s.store.ReadTx(ctx, func(q repository.Querier) error {
		var err error
		apps, err = q.ListApplications(ctx, subject)
		return err
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Get returns one application owned by subject.
func (s *ApplicationService) Get(ctx context.Context, id int64, subject string) (*model.Application, error) {
	var app *model.Application
	err := s.store.ReadTx(ctx, func(q repository.Querier) error {
		var err error
		app, err = ResolveApplication(ctx, q, id, subject)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Create stores a new application owned by subject.
func (s *ApplicationService) Create(ctx context.Context, subject string, input ApplicationInput) (*model.Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	app := &model.Application{}
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		owner, err := q.GetAccountByEmail(ctx, subject)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return fmt.Errorf("%w: %s", ErrAuthenticatedAccountMissing, subject)
		}
		if err != nil {
			return fmt.Errorf("load owner: %w", err)
		}

		app.OwnerID = owner.ID
		input.applyTo(app)
		return q.CreateApplication(ctx, app)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncApplicationCreated()
	return app, nil
}

// Update replaces every mutable field of an application owned by subject.
func (s *ApplicationService) Update(ctx context.Context, id int64, subject string, input ApplicationInput) (*model.Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var app *model.Application
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		var err error
		app, err = ResolveApplication(ctx, q, id, subject)
		if err != nil {
			return err
		}

		input.applyTo(app)
		if err := q.UpdateApplication(ctx, app); err != nil {
			return fmt.Errorf("update application %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncApplicationUpdated()
	return app, nil
}

// Delete removes an application owned by subject together with its notes.
func (s *ApplicationService) Delete(ctx context.Context, id int64, subject string) error {
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		if _, err := ResolveApplication(ctx, q, id, subject); err != nil {
			return err
		}
		if err := q.DeleteApplication(ctx, id); err != nil {
			return fmt.Errorf("delete application %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncApplicationDeleted()
	return nil
}

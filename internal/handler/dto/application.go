package dto

import (
	"time"

	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/service"
)

// ApplicationRequest is the body of POST and PUT /api/applications.
// PUT is a full replacement: omitted optional fields are cleared.
type ApplicationRequest struct {
	CompanyName       string      `json:"companyName" validate:"notblank,max=255,nonul"`
	PositionTitle     string      `json:"positionTitle" validate:"notblank,max=255,nonul"`
	Location          *string     `json:"location" validate:"omitempty,max=255,nonul"`
	WorkMode          *string     `json:"workMode" validate:"omitempty,oneof=ONSITE REMOTE HYBRID"`
	ApplicationSource *string     `json:"applicationSource" validate:"omitempty,max=255,nonul"`
	JobPostingURL     *string     `json:"jobPostingUrl" validate:"omitempty,nonul"`
	SalaryMin         *int32      `json:"salaryMin"`
	SalaryMax         *int32      `json:"salaryMax"`
	Status            string      `json:"status" validate:"required,oneof=APPLIED INTERVIEWING OFFER ACCEPTED REJECTED WITHDRAWN"`
	ApplicationDate   *model.Date `json:"applicationDate" validate:"required"`
	NextStepDate      *model.Date `json:"nextStepDate"`
}

// ToInput converts the request to service input.
func (r ApplicationRequest) ToInput() service.ApplicationInput {
	input := service.ApplicationInput{
		CompanyName:     r.CompanyName,
		PositionTitle:   r.PositionTitle,
		Location:        r.Location,
		Source:          r.ApplicationSource,
		PostingURL:      r.JobPostingURL,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		Status:          model.Status(r.Status),
		ApplicationDate: r.ApplicationDate,
		NextStepDate:    r.NextStepDate,
	}
	if r.WorkMode != nil {
		mode := model.WorkMode(*r.WorkMode)
		input.WorkMode = &mode
	}
	return input
}

// ApplicationResponse represents an application in API responses. Absent
// optional fields are rendered as null.
type ApplicationResponse struct {
	ID                int64           `json:"id"`
	CompanyName       string          `json:"companyName"`
	PositionTitle     string          `json:"positionTitle"`
	Location          *string         `json:"location"`
	WorkMode          *model.WorkMode `json:"workMode"`
	ApplicationSource *string         `json:"applicationSource"`
	JobPostingURL     *string         `json:"jobPostingUrl"`
	SalaryMin         *int32          `json:"salaryMin"`
	SalaryMax         *int32          `json:"salaryMax"`
	Status            model.Status    `json:"status"`
	ApplicationDate   model.Date      `json:"applicationDate"`
	NextStepDate      *model.Date     `json:"nextStepDate"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToApplicationResponse converts a model.Application to ApplicationResponse.
func ToApplicationResponse(a *model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                a.ID,
		CompanyName:       a.CompanyName,
		PositionTitle:     a.PositionTitle,
		Location:          a.Location,
		WorkMode:          a.WorkMode,
		ApplicationSource: a.Source,
		JobPostingURL:     a.PostingURL,
		SalaryMin:         a.SalaryMin,
		SalaryMax:         a.SalaryMax,
		Status:            a.Status,
		ApplicationDate:   a.ApplicationDate,
		NextStepDate:      a.NextStepDate,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ToApplicationListResponse converts applications, never returning nil so
// an empty list encodes as [].
func ToApplicationListResponse(apps []*model.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, ToApplicationResponse(a))
	}
	return out
}

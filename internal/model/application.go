package model

import "time"

// Status is the pipeline stage of an application. Any value may follow any
// other; there are no transition rules.
type Status string

const (
	StatusApplied      Status = "APPLIED"
	StatusInterviewing Status = "INTERVIEWING"
	StatusOffer        Status = "OFFER"
	StatusAccepted     Status = "ACCEPTED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
)

// Statuses lists every Status in declaration order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer,
		StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// WorkMode describes where the position is performed.
type WorkMode string

const (
	WorkModeOnsite WorkMode = "ONSITE"
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
)

// IsValid reports whether m is one of the known work modes.
func (m WorkMode) IsValid() bool {
	switch m {
	case WorkModeOnsite, WorkModeRemote, WorkModeHybrid:
		return true
	}
	return false
}

// Application is a job application owned by exactly one Account.
type Application struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"-"`
	CompanyName     string    `json:"companyName"`
	PositionTitle   string    `json:"positionTitle"`
	Location        *string   `json:"location"`
	WorkMode        *WorkMode `json:"workMode"`
	Source          *string   `json:"applicationSource"`
	PostingURL      *string   `json:"jobPostingUrl"`
	SalaryMin       *int32    `json:"salaryMin"`
	SalaryMax       *int32    `json:"salaryMax"`
	Status          Status    `json:"status"`
	ApplicationDate Date      `json:"applicationDate"`
	NextStepDate    *Date     `json:"nextStepDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

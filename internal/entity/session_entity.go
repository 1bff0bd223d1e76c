package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlowData carries partial state between dialog steps. One group of fields
// per flow family; a step writes only the fields its flow owns.
type FlowData struct {
	// Navigation context
	CurrentSiteID     *uuid.UUID `json:"currentSiteId,omitempty"`
	CurrentEmployeeID *uuid.UUID `json:"currentEmployeeId,omitempty"`
	CurrentShiftID    *uuid.UUID `json:"currentShiftId,omitempty"`
	CurrentWorkLogID  *uuid.UUID `json:"currentWorkLogId,omitempty"`

	// Site creation / editing
	SiteName        string `json:"siteName,omitempty"`
	SitePlannedStart string `json:"sitePlannedStart,omitempty"`
	SitePlannedEnd   string `json:"sitePlannedEnd,omitempty"`
	SiteLunchMinutes *int   `json:"siteLunchMinutes,omitempty"`

	// Employee creation / onboarding
	EmployeeName string `json:"employeeName,omitempty"`
	RefCode      string `json:"refCode,omitempty"`

	// Shift start flow
	AbsentEmployeeIDs []uuid.UUID `json:"absentEmployeeIds,omitempty"`

	// Work-log correction flow
	WorkLogDate         string `json:"workLogDate,omitempty"`
	WorkLogStart        string `json:"workLogStart,omitempty"`
	WorkLogEnd          string `json:"workLogEnd,omitempty"`
	WorkLogLunchMinutes *int   `json:"workLogLunchMinutes,omitempty"`

	// Report flow
	ReportFrom string `json:"reportFrom,omitempty"`
	ReportTo   string `json:"reportTo,omitempty"`
}

// Session is one end-user conversation. State is nil while no flow is
// active; Data survives across steps until the flow completes or resets.
type Session struct {
	Id         uuid.UUID
	ChatUserId int64
	State      *string
	Data       FlowData
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

package dto

import "github.com/google/uuid"

type HoursReportRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// HoursReportRow aggregates one employee's attendance over a period.
type HoursReportRow struct {
	EmployeeId   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	TotalHours   float64   `json:"total_hours"`
	DaysWorked   int       `json:"days_worked"`
}

type HoursReportResponse struct {
	SiteId uuid.UUID        `json:"site_id"`
	From   string           `json:"from"`
	To     string           `json:"to"`
	Rows   []HoursReportRow `json:"rows"`
}

type AuditEntryResponse struct {
	Id         uuid.UUID              `json:"id"`
	EntityType string                 `json:"entity_type"`
	EntityId   uuid.UUID              `json:"entity_id"`
	Action     string                 `json:"action"`
	ChangedBy  uuid.UUID              `json:"changed_by"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	ChangedAt  string                 `json:"changed_at"`
}

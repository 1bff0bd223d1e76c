package constant

// Audit entity types.
const (
	EntitySession  = "sessions"
	EntityEmployee = "employees"
	EntitySite     = "work_sites"
	EntityShift    = "site_shifts"
	EntityWorkLog  = "work_logs"
)

// Audit actions.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionAssign   = "assign"
	ActionUnassign = "unassign"
)

// AuditTopicName is the in-process watermill topic audit events flow through
// before being forwarded to NATS.
const AuditTopicName = "AUDIT_TRAIL"

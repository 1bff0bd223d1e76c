package dialog

// State identifies one step of the guided conversation. The set is closed:
// a session's state is either nil (no active flow) or one of these.
type State string

const (
	StateOnboardingStart     State = "ONBOARDING_START"
	StateOnboardingEnterName State = "ONBOARDING_ENTER_NAME"
	StateRefLinkActivate     State = "EMPLOYEE_REF_LINK_ACTIVATE"
	StateEnterManagerPin     State = "ENTER_MANAGER_PIN"

	StateAdminMenu    State = "ADMIN_MENU"
	StateManagerMenu  State = "MANAGER_MENU"
	StateEmployeeMenu State = "EMPLOYEE_MENU"

	StateSitesList           State = "SITES_LIST"
	StateSiteCreateEnterName State = "SITE_CREATE_ENTER_NAME"
	StateSiteCreateSchedule  State = "SITE_CREATE_ENTER_SCHEDULE"
	StateSiteDetails         State = "SITE_DETAILS"
	StateSiteEditSchedule    State = "SITE_EDIT_SCHEDULE"
	StateSiteEditStatus      State = "SITE_EDIT_STATUS"
	StateSiteEmployeesList   State = "SITE_EMPLOYEES_LIST"
	StateSiteEmployeeOnboard State = "SITE_EMPLOYEE_ONBOARD"

	StateEmployeesList           State = "EMPLOYEES_LIST"
	StateEmployeeCreateEnterName State = "EMPLOYEE_CREATE_ENTER_NAME"
	StateEmployeeDetails         State = "EMPLOYEE_DETAILS"
	StateEmployeeWorkLogs        State = "EMPLOYEE_WORK_LOGS"

	StateSiteShiftsList       State = "SITE_SHIFTS_LIST"
	StateShiftDetails         State = "SHIFT_DETAILS"
	StateShiftStartMarkAbsent State = "SHIFT_START_MARK_ABSENT"
	StateShiftAddEmployee     State = "SHIFT_ADD_EMPLOYEE"
	StateShiftReport          State = "SHIFT_REPORT"

	StateWorkLogCreate  State = "WORKLOG_CREATE"
	StateWorkLogDetails State = "WORKLOG_DETAILS"
	StateWorkLogEdit    State = "WORKLOG_EDIT"
)

// EventKind selects which registered behavior runs for a state.
type EventKind string

const (
	EventEnter EventKind = "enter"
	EventInput EventKind = "input"
)

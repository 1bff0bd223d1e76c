package dialog

// Graph is the static table of legal state moves. It is the single source
// of truth for "what can happen next"; handlers only decide what to do
// once a transition has already been applied.
type Graph map[State][]State

// CanTransition reports whether moving from one state to another is legal.
// A nil "from" permits any target: that is the bootstrap case for a fresh
// session. Unknown "from" values deny everything.
func (g Graph) CanTransition(from *State, to State) bool {
	if from == nil {
		return true
	}
	allowed, ok := g[*from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Contains reports whether a state is a vertex of the graph.
func (g Graph) Contains(state State) bool {
	if _, ok := g[state]; ok {
		return true
	}
	for _, targets := range g {
		for _, s := range targets {
			if s == state {
				return true
			}
		}
	}
	return false
}

// DefaultGraph returns the authored navigation map. Every edge reflects a
// legitimate UI move; privileged jumps (menu resets) use force transitions
// instead of extra edges.
func DefaultGraph() Graph {
	return Graph{
		StateOnboardingStart:     {StateOnboardingEnterName, StateRefLinkActivate},
		StateOnboardingEnterName: {StateEmployeeMenu},
		StateRefLinkActivate:     {StateEmployeeMenu, StateManagerMenu},
		StateEnterManagerPin:     {StateManagerMenu, StateAdminMenu},

		StateAdminMenu: {
			StateSitesList, StateEmployeesList, StateEnterManagerPin,
		},
		StateManagerMenu: {
			StateSitesList, StateEmployeesList, StateEnterManagerPin,
		},
		StateEmployeeMenu: {
			StateEmployeeWorkLogs,
		},

		StateSitesList: {
			StateSiteDetails, StateSiteCreateEnterName,
			StateAdminMenu, StateManagerMenu,
		},
		StateSiteCreateEnterName: {StateSiteCreateSchedule, StateSitesList},
		StateSiteCreateSchedule:  {StateSiteDetails, StateSitesList},
		StateSiteDetails: {
			StateSitesList, StateSiteEditSchedule, StateSiteEditStatus,
			StateSiteEmployeesList, StateSiteShiftsList, StateShiftReport,
		},
		StateSiteEditSchedule: {StateSiteDetails},
		StateSiteEditStatus:   {StateSiteDetails},
		StateSiteEmployeesList: {
			StateSiteDetails, StateSiteEmployeeOnboard, StateEmployeeDetails,
		},
		StateSiteEmployeeOnboard: {StateSiteEmployeesList},

		StateEmployeesList: {
			StateEmployeeDetails, StateEmployeeCreateEnterName,
			StateAdminMenu, StateManagerMenu,
		},
		StateEmployeeCreateEnterName: {StateEmployeeDetails, StateEmployeesList},
		StateEmployeeDetails: {
			StateEmployeesList, StateEmployeeWorkLogs, StateWorkLogCreate,
		},
		StateEmployeeWorkLogs: {
			StateEmployeeDetails, StateWorkLogDetails, StateEmployeeMenu,
		},

		StateSiteShiftsList: {StateSiteDetails, StateShiftDetails},
		StateShiftDetails: {
			StateSiteShiftsList, StateShiftStartMarkAbsent,
			StateShiftAddEmployee, StateSiteDetails,
		},
		StateShiftStartMarkAbsent: {StateShiftDetails},
		StateShiftAddEmployee:     {StateShiftDetails},
		StateShiftReport:          {StateSiteDetails},

		StateWorkLogCreate:  {StateWorkLogDetails, StateEmployeeDetails},
		StateWorkLogDetails: {StateWorkLogEdit, StateEmployeeWorkLogs},
		StateWorkLogEdit:    {StateWorkLogDetails},
	}
}

package domain

// RosterRequest is the generation request as it arrives on the wire. Times
// are four digit military clock strings and days are three letter names
// ("SUN".."SAT"); the handler converts both before the engine sees them.
type RosterRequest struct {
	ShiftLength          int                       `json:"shiftLength" validate:"required,oneof=8 10"`
	DailyShifts          map[string]map[string]int `json:"dailyShifts" validate:"required"`
	PreferredWorkPattern string                    `json:"preferredWorkPattern" validate:"omitempty,oneof=5/8 4/10"`
	PreferredShiftOrder  []string                  `json:"preferredShiftOrder"`
	RdoContiguous        bool                      `json:"rdoContiguous"`
}

// RosterRow is one worker's week. Days maps day names to "OFF", a military
// time, or "----" for a slot no attempt could resolve.
type RosterRow struct {
	Rotation string            `json:"rotation"`
	Days     map[string]string `json:"days"`
}

type RosterSchedule struct {
	Rows                []RosterRow               `json:"rows"`
	ShiftTotals         map[string]map[string]int `json:"shiftTotals"`
	Grade               int                       `json:"grade"`
	DesirabilityRelaxed int                       `json:"desirabilityRelaxed"`
	QuotaRelaxed        int                       `json:"quotaRelaxed"`
	Unresolved          int                       `json:"unresolved"`
}

type RosterResponse struct {
	Schedules []RosterSchedule          `json:"schedules"`
	Attempts  int                       `json:"attempts"`
	Outliers  map[string]map[string]int `json:"outliers,omitempty"`
}

// ShiftLineCheckRequest audits a hand-built line. Days maps day names to
// "OFF" or a military time.
type ShiftLineCheckRequest struct {
	ShiftLength int               `json:"shiftLength" validate:"required,oneof=8 10"`
	Days        map[string]string `json:"days" validate:"required"`
}

type ShiftLineCheckResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

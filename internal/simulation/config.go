package simulation

import "time"

// Config holds configuration for one marketplace simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumTalent  int           // Number of talent profiles to seed
	NumShifts  int           // Number of shifts to seed
	FillCount  int           // Headcount requested per auto-fill call
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for the seeded dataset
	LogFile    string        // Log file for simulation output
	Verbose    bool          // Enable verbose logging
}

// talentRequest mirrors the POST /talent wire schema.
type talentRequest struct {
	DisplayName     string   `json:"displayName"`
	AvailableNow    bool     `json:"availableNow"`
	MinHourlyRate   float64  `json:"minHourlyRate"`
	Rating          float64  `json:"rating"`
	CompletedShifts int      `json:"completedShifts"`
	Skills          []string `json:"skills"`
}

// shiftRequest mirrors the POST /shifts wire schema.
type shiftRequest struct {
	BusinessID    string  `json:"businessId"`
	RoleType      string  `json:"roleType"`
	HourlyRate    float64 `json:"hourlyRate"`
	WorkersNeeded int     `json:"workersNeeded"`
	Location      string  `json:"location"`
	StartsAt      string  `json:"startsAt"`
	EndsAt        string  `json:"endsAt"`
}

type createdEntity struct {
	ID string `json:"id"`
}

// invitedTalent mirrors one entry of the auto-fill response talent list.
type invitedTalent struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Score  float64 `json:"score"`
}

// autofillResponse mirrors the POST /shifts/autofill response schema.
type autofillResponse struct {
	Success bool            `json:"success"`
	Invited int             `json:"invited"`
	Talent  []invitedTalent `json:"talent"`
	Message string          `json:"message"`
}

// assignmentRow mirrors one entry of GET /shifts/{id}/assignments.
type assignmentRow struct {
	ID       string `json:"id"`
	ShiftID  string `json:"shiftId"`
	TalentID string `json:"talentId"`
	Status   string `json:"status"`
}

// fillOutcome records the result of auto-filling one shift.
type fillOutcome struct {
	ShiftID      string
	Requested    int
	FirstInvited int
	RerunInvited int
	Talent       []invitedTalent
}

// Stats holds simulation statistics.
type Stats struct {
	TalentSeeded     int
	ShiftsSeeded     int
	FillCalls        int
	FillFailures     int
	InvitesCreated   int
	UnderfilledCalls int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

package domain

import "time"

// BusinessRules holds the labor-rule parameters for one shift length.
// Rest minimums are in hours.
type BusinessRules struct {
	ShiftLength       int       `json:"shiftLength"`
	MinRestDayToMid   float64   `json:"minRestDayToMid"`
	MinRestEveToDay   float64   `json:"minRestEveToDay"`
	MinRestMidToMid   float64   `json:"minRestMidToMid"`
	MaxConsecutiveMid int       `json:"maxConsecutiveMid"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}

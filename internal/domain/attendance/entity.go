package attendance

import "time"

// ClockIn is one attendance clock-in event. Date is the wall-clock calendar
// day of the event; the penalty assessor counts distinct late dates per
// month over these records.
type ClockIn struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	Date       time.Time

	CreatedAt time.Time
}

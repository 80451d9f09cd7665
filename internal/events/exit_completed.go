package events

import "time"

const ExitCompletedTopic = "hr.exit.lifecycle.v1"

type ExitCompletedEvent struct {
	EventType      string    `json:"event_type"`
	ExitRequestID  string    `json:"exit_request_id"`
	EmployeeID     string    `json:"employee_id"`
	LastWorkingDay string    `json:"last_working_day"`
	OccurredAt     time.Time `json:"occurred_at"`
}

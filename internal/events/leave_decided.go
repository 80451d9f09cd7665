package events

import "time"

const LeaveDecidedTopic = "hr.leave.decision.v1"

// LeaveDecidedEvent is emitted whenever a leave request reaches a decision
// (approved or rejected) so downstream systems can react without polling.
type LeaveDecidedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	Decision    string    `json:"decision"`
	DecidedBy   string    `json:"decided_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

package leave

import "time"

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"omitempty,max=500"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

type LeaveResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	LeaveTypeID     string     `json:"leave_type_id"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	TotalDays       int        `json:"total_days"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		ApprovedAt:      l.ApprovedAt,
	}
	if l.ApprovedBy != nil {
		id := l.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}

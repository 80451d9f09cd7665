package leavetype

type CreateLeaveTypeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	DefaultDays  int     `json:"default_days" binding:"required,min=0"`
	IsPaid       *bool   `json:"is_paid" binding:"required"`
	WorkdaysOnly bool    `json:"workdays_only"`
}

type LeaveTypeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DefaultDays  int     `json:"default_days"`
	IsPaid       bool    `json:"is_paid"`
	WorkdaysOnly bool    `json:"workdays_only"`
}

package leavebalance

type SeedBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,min=2000"`
	TotalDays   *int   `json:"total_days"`
}

type BalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	TotalDays   int    `json:"total_days"`
	UsedDays    int    `json:"used_days"`
	Remaining   int    `json:"remaining"`
}

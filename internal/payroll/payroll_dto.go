package payroll

import "time"

type GeneratePayslipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	BasicPay   int64  `json:"basic_pay" binding:"required,min=0"`
	Allowances int64  `json:"allowances" binding:"min=0"`
	Deductions int64  `json:"deductions" binding:"min=0"`
}

type UpdatePayslipRequest struct {
	BasicPay   *int64 `json:"basic_pay" binding:"omitempty,min=0"`
	Allowances *int64 `json:"allowances" binding:"omitempty,min=0"`
	Deductions *int64 `json:"deductions" binding:"omitempty,min=0"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	BasicPay   int64 `json:"basic_pay"`
	Allowances int64 `json:"allowances"`
	Deductions int64 `json:"deductions"`
	NetPay     int64 `json:"net_pay"`

	IsLocked    bool      `json:"is_locked"`
	GeneratedAt time.Time `json:"generated_at"`
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		Month:       p.Month,
		Year:        p.Year,
		BasicPay:    p.BasicPay,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		NetPay:      p.NetPay,
		IsLocked:    p.IsLocked,
		GeneratedAt: p.GeneratedAt,
	}
}

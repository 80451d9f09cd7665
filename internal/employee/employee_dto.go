package employee

import "time"

type CreateEmployeeRequest struct {
	FirstName          string  `json:"first_name" binding:"required,min=2,max=50"`
	LastName           string  `json:"last_name" binding:"required,min=2,max=50"`
	Email              string  `json:"email" binding:"required,email"`
	DepartmentID       string  `json:"department_id" binding:"required,uuid"`
	DesignationID      string  `json:"designation_id" binding:"required,uuid"`
	ReportingManagerID *string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	DateOfJoining      string  `json:"date_of_joining" binding:"required"`
}

type AssignManagerRequest struct {
	ReportingManagerID string `json:"reporting_manager_id" binding:"required,uuid"`
}

type EmployeeResponse struct {
	ID                 string    `json:"id"`
	EmployeeCode       string    `json:"employee_code"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	DepartmentID       string    `json:"department_id"`
	DesignationID      string    `json:"designation_id"`
	ReportingManagerID *string   `json:"reporting_manager_id,omitempty"`
	Status             string    `json:"status"`
	DateOfJoining      string    `json:"date_of_joining"`
	CreatedAt          time.Time `json:"created_at"`
}

// OrgChartNode is one employee in the reporting tree, children sorted by
// employee code.
type OrgChartNode struct {
	ID           string         `json:"id"`
	EmployeeCode string         `json:"employee_code"`
	Name         string         `json:"name"`
	Status       string         `json:"status"`
	Reports      []OrgChartNode `json:"reports,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		EmployeeCode:  e.EmployeeCode,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		DepartmentID:  e.DepartmentID.String(),
		DesignationID: e.DesignationID.String(),
		Status:        e.Status,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt,
	}
	if e.ReportingManagerID != nil {
		id := e.ReportingManagerID.String()
		resp.ReportingManagerID = &id
	}
	return resp
}

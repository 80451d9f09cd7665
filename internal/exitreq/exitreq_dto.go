package exitreq

import "time"

type InitiateExitRequest struct {
	Reason         string `json:"reason" binding:"required,min=5,max=1000"`
	LastWorkingDay string `json:"last_working_day" binding:"required"`
}

type UpdateChecklistRequest struct {
	AssetReturned        *bool `json:"asset_returned"`
	KnowledgeTransferred *bool `json:"knowledge_transferred"`
	FinalSettlementDone  *bool `json:"final_settlement_done"`
}

type ExitResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Reason         string `json:"reason"`
	LastWorkingDay string `json:"last_working_day"`
	Status         string `json:"status"`

	ManagerApprovedBy *string    `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *time.Time `json:"manager_approved_at,omitempty"`
	HRApprovedBy      *string    `json:"hr_approved_by,omitempty"`
	HRApprovedAt      *time.Time `json:"hr_approved_at,omitempty"`

	AssetReturned        bool `json:"asset_returned"`
	KnowledgeTransferred bool `json:"knowledge_transferred"`
	FinalSettlementDone  bool `json:"final_settlement_done"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func mapToResponse(e ExitRequest) ExitResponse {
	resp := ExitResponse{
		ID:                   e.ID.String(),
		EmployeeID:           e.EmployeeID.String(),
		Reason:               e.Reason,
		LastWorkingDay:       e.LastWorkingDay.Format("2006-01-02"),
		Status:               e.Status,
		ManagerApprovedAt:    e.ManagerApprovedAt,
		HRApprovedAt:         e.HRApprovedAt,
		AssetReturned:        e.AssetReturned,
		KnowledgeTransferred: e.KnowledgeTransferred,
		FinalSettlementDone:  e.FinalSettlementDone,
		CompletedAt:          e.CompletedAt,
		CreatedAt:            e.CreatedAt,
	}
	if e.ManagerApprovedBy != nil {
		id := e.ManagerApprovedBy.String()
		resp.ManagerApprovedBy = &id
	}
	if e.HRApprovedBy != nil {
		id := e.HRApprovedBy.String()
		resp.HRApprovedBy = &id
	}
	return resp
}

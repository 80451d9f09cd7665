package policy

import "time"

type CreatePolicyRequest struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	Content       string `json:"content" binding:"required"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

type PolicyResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Version       int       `json:"version"`
	IsActive      bool      `json:"is_active"`
	EffectiveDate string    `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type AcknowledgementResponse struct {
	PolicyID       string    `json:"policy_id"`
	EmployeeID     string    `json:"employee_id"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

func mapToResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		ID:            p.ID.String(),
		Title:         p.Title,
		Content:       p.Content,
		Version:       p.Version,
		IsActive:      p.IsActive,
		EffectiveDate: p.EffectiveDate.Format("2006-01-02"),
		CreatedAt:     p.CreatedAt,
	}
}

func mapAckToResponse(a PolicyAcknowledgement) AcknowledgementResponse {
	return AcknowledgementResponse{
		PolicyID:       a.PolicyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AcknowledgedAt: a.AcknowledgedAt,
	}
}

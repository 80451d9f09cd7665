package designation

type CreateDesignationRequest struct {
	Title string `json:"title" binding:"required,min=2,max=100"`
	Level int    `json:"level" binding:"required,min=1,max=15"`
}

type DesignationResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

func mapToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:    d.ID.String(),
		Title: d.Title,
		Level: d.Level,
	}
}

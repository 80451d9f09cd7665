package holiday

type CreateHolidayRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Date       string `json:"date" binding:"required"`
	IsOptional bool   `json:"is_optional"`
}

type HolidayResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	IsOptional bool   `json:"is_optional"`
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:         h.ID.String(),
		Name:       h.Name,
		Date:       h.Date.Format("2006-01-02"),
		IsOptional: h.IsOptional,
	}
}

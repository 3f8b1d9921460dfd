package response

import (
	"time"

	"clientdesk/internal/domain/entities"
)

type ProjectResponse struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoice_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func FromProjects(items []entities.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProject(p))
	}
	return out
}

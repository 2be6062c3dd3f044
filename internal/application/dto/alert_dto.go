package dto

import "time"

// AlertResponse representación HTTP de una alerta.
type AlertResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	RecipientID string     `json:"recipient_id,omitempty"`
	RelatedID   string     `json:"related_id"`
	Status      string     `json:"status"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

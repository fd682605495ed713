package models

import "time"

// Notification is a stored per-user notice, surfaced in the app and
// optionally mirrored as an FCM push.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

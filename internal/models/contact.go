package models

import (
	"net/mail"
	"strings"
	"time"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r *ContactRequest) Validate() map[string]string {
	errors := make(map[string]string)

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errors["email"] = "Email is required"
	} else if len(email) > 254 {
		errors["email"] = "Email is too long"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errors["email"] = "Email is invalid"
	}

	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		errors["message"] = "Message is required"
	} else if len(msg) > 4000 {
		errors["message"] = "Message is too long"
	}

	return errors
}

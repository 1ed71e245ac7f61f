package models

import "time"

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`     // "user" or "admin"
	Provider  string     `json:"provider"` // "local" or "google"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

package models

import "time"

// Coach represents a stored coach record.
type Coach struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Skills []string `db:"-" json:"skills"`
}

// CoachFilter captures filtering options for listing coaches.
type CoachFilter struct {
	Search    string
	Skill     string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

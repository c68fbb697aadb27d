package models

import "time"

// Subject represents an academic subject referenced by student records.
// Deleting a subject cascades to its students at the database level.
type Subject struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

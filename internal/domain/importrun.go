package domain

import "time"

// ImportRun is the audit record written with every successful import.
type ImportRun struct {
	ID        string
	Source    string
	Summary   Summary
	Conflicts int
	CreatedAt time.Time
}

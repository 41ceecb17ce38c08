package structs

import "time"

// AuditRecord represents one mutation event in the change history.
// Records are immutable once created and only ever appended.
type AuditRecord struct {
	ID        string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	// Actor is the authenticated caller who performed the action.
	Actor string `json:"username"`
	// Subject is the employee record the action touched.
	Subject string `json:"userchanged"`
	// Action is a human-readable summary, e.g. "Added User jdoe" or
	// "department from 'Eng' to 'Sales'".
	Action string `json:"action"`
}

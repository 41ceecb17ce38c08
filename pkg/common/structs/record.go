package structs

import (
	"fmt"
	"time"
)

// StartDateLayout is the only accepted shape for the sdate field.
// It is stored and served as a plain "YYYY-MM-DD" string, never a timestamp.
const StartDateLayout = "2006-01-02"

// Record represents one employee in the directory.
// Username is the unique identifier and the sole cache key; it is
// immutable after creation.
type Record struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Password    string `json:"password,omitempty"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       int64  `json:"phone"`
	StartDate   string `json:"sdate"`
	Role        string `json:"role"`
}

// Sanitized returns a copy of the record with the password stripped.
// Every record leaving the backend goes through this.
func (r Record) Sanitized() Record {
	r.Password = ""
	return r
}

// NormalizeStartDate validates the sdate field against the strict
// YYYY-MM-DD layout and rewrites it in canonical form.
func (r *Record) NormalizeStartDate() error {
	t, err := time.Parse(StartDateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid date format for sdate, expected YYYY-MM-DD: %w", err)
	}
	r.StartDate = t.Format(StartDateLayout)
	return nil
}

// FieldValue returns the record's value for a column name as used by the
// sort and filter endpoints. Unknown columns yield an empty string so they
// compare as minimal.
func (r Record) FieldValue(column string) string {
	switch column {
	case "username":
		return r.Username
	case "name":
		return r.Name
	case "department":
		return r.Department
	case "designation":
		return r.Designation
	case "email":
		return r.Email
	case "phone":
		if r.Phone == 0 {
			return ""
		}
		return fmt.Sprintf("%020d", r.Phone)
	case "sdate":
		return r.StartDate
	case "role":
		return r.Role
	default:
		return ""
	}
}

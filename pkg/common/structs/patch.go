package structs

import "strconv"

// RecordPatch is a partial update of a Record. Only the mutable fields are
// enumerated here; a nil pointer means "leave unchanged". Username is
// deliberately absent, it can never be patched.
type RecordPatch struct {
	Name        *string `json:"name,omitempty"`
	Password    *string `json:"password,omitempty"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *int64  `json:"phone,omitempty"`
	StartDate   *string `json:"sdate,omitempty"`
	Role        *string `json:"role,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p RecordPatch) IsEmpty() bool {
	return p.Name == nil && p.Password == nil && p.Department == nil &&
		p.Designation == nil && p.Email == nil && p.Phone == nil &&
		p.StartDate == nil && p.Role == nil
}

// Apply merges the patch into rec: later fields overwrite same-named
// existing fields, absent fields are preserved.
func (p RecordPatch) Apply(rec *Record) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Password != nil {
		rec.Password = *p.Password
	}
	if p.Department != nil {
		rec.Department = *p.Department
	}
	if p.Designation != nil {
		rec.Designation = *p.Designation
	}
	if p.Email != nil {
		rec.Email = *p.Email
	}
	if p.Phone != nil {
		rec.Phone = *p.Phone
	}
	if p.StartDate != nil {
		rec.StartDate = *p.StartDate
	}
	if p.Role != nil {
		rec.Role = *p.Role
	}
}

// FieldChange is one entry of a field-level diff between a Record and a
// RecordPatch, rendered into audit descriptions.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Diff compares the patch against the current record, field by field.
// Only fields present in the patch are considered; a field is changed if
// its new value differs from the current one. Password changes are
// reported without values. The returned order is fixed so audit
// descriptions stay deterministic.
func (p RecordPatch) Diff(current Record) []FieldChange {
	var changes []FieldChange

	if p.Name != nil && *p.Name != current.Name {
		changes = append(changes, FieldChange{Field: "name", Old: current.Name, New: *p.Name})
	}
	if p.Department != nil && *p.Department != current.Department {
		changes = append(changes, FieldChange{Field: "department", Old: current.Department, New: *p.Department})
	}
	if p.Designation != nil && *p.Designation != current.Designation {
		changes = append(changes, FieldChange{Field: "designation", Old: current.Designation, New: *p.Designation})
	}
	if p.Email != nil && *p.Email != current.Email {
		changes = append(changes, FieldChange{Field: "email", Old: current.Email, New: *p.Email})
	}
	if p.Phone != nil && *p.Phone != current.Phone {
		changes = append(changes, FieldChange{
			Field: "phone",
			Old:   formatPhone(current.Phone),
			New:   formatPhone(*p.Phone),
		})
	}
	if p.StartDate != nil && *p.StartDate != current.StartDate {
		changes = append(changes, FieldChange{Field: "sdate", Old: current.StartDate, New: *p.StartDate})
	}
	if p.Role != nil && *p.Role != current.Role {
		changes = append(changes, FieldChange{Field: "role", Old: current.Role, New: *p.Role})
	}
	if p.Password != nil && *p.Password != "" {
		changes = append(changes, FieldChange{Field: "password", Old: "********", New: "********"})
	}

	return changes
}

func formatPhone(p int64) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatInt(p, 10)
}

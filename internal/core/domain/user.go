package domain

// RoleDoctor is the only role whose registration carries a specialization.
const RoleDoctor = "doctor"

// UserSummary is the client's read-only copy of the authenticated user.
type UserSummary struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

// FullName joins first and last name with a single space.
func (u UserSummary) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Registration carries the fields of the sign-up form.
type Registration struct {
	FirstName      string
	LastName       string
	Username       string
	Email          string
	Password       string
	Role           string
	Specialization string
}

// EffectiveSpecialization returns the specialization only for doctors; the
// field is hidden on the form for every other role.
func (r Registration) EffectiveSpecialization() string {
	if r.Role != RoleDoctor {
		return ""
	}
	return r.Specialization
}

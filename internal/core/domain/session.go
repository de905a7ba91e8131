package domain

// Session is the in-memory authentication state of one browser workspace.
// Only Token is ever persisted; User is always re-fetched from the backend.
type Session struct {
	Token string
	User  *UserSummary
}

// Authenticated reports whether the session holds both a token and a
// verified user. A restored token without a user is still provisional.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

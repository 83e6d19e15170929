package domain

// SessionScope separates general-audience sessions from administrative ones.
type SessionScope string

const (
	SessionScopeGeneral SessionScope = "general"
	SessionScopeAdmin   SessionScope = "admin"
)

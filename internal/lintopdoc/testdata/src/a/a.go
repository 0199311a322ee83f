package a

// GetUser returns the user with the given ID.
//
// The lookup is case-sensitive and does not follow aliases.
//
//opdoc:operation
func GetUser(id string) string { return id }

// ListUsers returns every user.
//
//opdoc:operation
func ListUsers() []string { return nil }

type Service struct{}

// Close shuts the service down.
//
//opdoc:operation
func (Service) Close() {} // want `opdoc:operation cannot be applied to method Close`

//opdoc:operation
func Undocumented() {} // want `opdoc:operation on Undocumented produces an empty operation summary`

//
// Starts with a blank doc line, so the summary is empty.
//
//opdoc:operation
func LeadingBlank() {} // want `opdoc:operation on LeadingBlank produces an empty operation summary`

// Helper has no directive and is left alone.
func Helper() {}

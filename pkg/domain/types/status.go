package types

import "strings"

// Status represents the classification of a credential verification
type Status string

const (
	StatusValid         Status = "valid"
	StatusInvalid       Status = "invalid"
	StatusRestricted    Status = "restricted"
	StatusMisconfigured Status = "misconfigured"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Label returns the upper-case badge text used in reports
func (s Status) Label() string {
	return strings.ToUpper(string(s))
}

// IsValid checks if the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusInvalid, StatusRestricted, StatusMisconfigured:
		return true
	default:
		return false
	}
}

// IsFailure reports whether the status means the credential cannot be used as-is
func (s Status) IsFailure() bool {
	return s == StatusInvalid || s == StatusMisconfigured
}

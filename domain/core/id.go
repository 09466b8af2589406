package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// AuditID identifies one recorded audit in the ledger
type AuditID ID

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// NewAuditID creates a time-ordered audit identifier
func NewAuditID() AuditID {
	return AuditID(NewID())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

func (id AuditID) String() string { return string(id) }

// ParseAuditID validates that s is a UUID and returns it as an AuditID
func ParseAuditID(s string) (AuditID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", NewValidationError("audit_id", err.Error())
	}
	return AuditID(parsed.String()), nil
}

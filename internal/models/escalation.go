package models

import "fmt"

// EscalationLevel is the severity tier a contact is notified at.
type EscalationLevel string

const (
	LevelL1 EscalationLevel = "L1"
	LevelL2 EscalationLevel = "L2"
	LevelL3 EscalationLevel = "L3"
)

// EscalationLevels lists the valid levels in escalation order.
var EscalationLevels = []EscalationLevel{LevelL1, LevelL2, LevelL3}

// ParseEscalationLevel validates s as one of L1, L2, L3.
func ParseEscalationLevel(s string) (EscalationLevel, error) {
	for _, l := range EscalationLevels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid escalation level %q", s)
}

// EscalationContact is a per-client, per-level notification address.
type EscalationContact struct {
	ID       int             `json:"id"`
	ClientID int             `json:"client_id,omitempty"`
	Email    string          `json:"email"`
	Level    EscalationLevel `json:"level"`
}

// EscalationMatrix is the server's grouped view of a client's escalation contacts.
type EscalationMatrix struct {
	L1 []EscalationContact `json:"L1"`
	L2 []EscalationContact `json:"L2"`
	L3 []EscalationContact `json:"L3"`
}

// EmptyEscalationMatrix returns a matrix with three empty, non-nil levels.
func EmptyEscalationMatrix() EscalationMatrix {
	return EscalationMatrix{
		L1: []EscalationContact{},
		L2: []EscalationContact{},
		L3: []EscalationContact{},
	}
}

// Level returns the contacts registered at l.
func (m EscalationMatrix) Level(l EscalationLevel) []EscalationContact {
	switch l {
	case LevelL1:
		return m.L1
	case LevelL2:
		return m.L2
	case LevelL3:
		return m.L3
	}
	return nil
}

// Normalize replaces nil levels with empty slices so the matrix always encodes as three arrays.
func (m EscalationMatrix) Normalize() EscalationMatrix {
	if m.L1 == nil {
		m.L1 = []EscalationContact{}
	}
	if m.L2 == nil {
		m.L2 = []EscalationContact{}
	}
	if m.L3 == nil {
		m.L3 = []EscalationContact{}
	}
	return m
}

// EscalationContactRequest is the body of POST /api/clients/{id}/escalation-contacts.
type EscalationContactRequest struct {
	Email string          `json:"email"`
	Level EscalationLevel `json:"level"`
}

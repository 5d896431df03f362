package screens

import (
	"strings"

	"advisory-console/internal/models"
	"advisory-console/pkg/email"
)

// EscalationRegistry is the per-client L1/L2/L3 contact list.
type EscalationRegistry struct {
	ClientID int                     `json:"client_id"`
	Matrix   models.EscalationMatrix `json:"matrix"`
}

func NewEscalationRegistry() EscalationRegistry {
	return EscalationRegistry{Matrix: models.EmptyEscalationMatrix()}
}

// Reset scopes the registry to clientID with no contacts.
func (r EscalationRegistry) Reset(clientID int) EscalationRegistry {
	return EscalationRegistry{ClientID: clientID, Matrix: models.EmptyEscalationMatrix()}
}

func (r EscalationRegistry) Loaded(m models.EscalationMatrix) EscalationRegistry {
	r.Matrix = m.Normalize()
	return r
}

// LoadFailed falls back to three empty levels.
func (r EscalationRegistry) LoadFailed() EscalationRegistry {
	r.Matrix = models.EmptyEscalationMatrix()
	return r
}

// ContactRequest validates a new contact for the selected client.
func (r EscalationRegistry) ContactRequest(address, level string) (models.EscalationContactRequest, error) {
	if r.ClientID == 0 {
		return models.EscalationContactRequest{}, Invalid("Please select a client first.")
	}
	address = strings.TrimSpace(address)
	if err := email.ValidateAddress(address); err != nil {
		return models.EscalationContactRequest{}, &ValidationError{Message: "Please enter a valid email address.", Err: err}
	}
	l, err := models.ParseEscalationLevel(level)
	if err != nil {
		return models.EscalationContactRequest{}, &ValidationError{Message: "Please select an escalation level (L1, L2 or L3).", Err: err}
	}
	return models.EscalationContactRequest{Email: address, Level: l}, nil
}

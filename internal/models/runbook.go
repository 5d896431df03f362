package models

import "strings"

// Asset is a client inventory row.
type Asset struct {
	ID         int    `json:"id,omitempty"`
	ClientID   int    `json:"client_id"`
	AssetName  string `json:"asset_name"`
	Location   string `json:"location"`
	IPAddress  string `json:"ip_address"`
	Mode       string `json:"mode"`
	AssetType  string `json:"asset_type"`
	AssetOwner string `json:"asset_owner"`
	Remarks    string `json:"remarks,omitempty"`
}

// MissingFields lists the required asset columns left blank, in form order.
func (a Asset) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"asset_name", a.AssetName},
		{"location", a.Location},
		{"ip_address", a.IPAddress},
		{"mode", a.Mode},
		{"asset_type", a.AssetType},
		{"asset_owner", a.AssetOwner},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if a.ClientID == 0 {
		missing = append(missing, "client_id")
	}
	return missing
}

// SLAPolicy is a per-priority response/resolution commitment.
type SLAPolicy struct {
	ID             int    `json:"id,omitempty"`
	ClientID       int    `json:"client_id"`
	Priority       string `json:"priority"`
	ResponseTime   string `json:"response_time"`
	ResolutionTime string `json:"resolution_time"`
}

// PasswordRecord is a credential stored against an asset.
type PasswordRecord struct {
	ID        int    `json:"id,omitempty"`
	AssetID   int    `json:"asset_id,omitempty"`
	AssetName string `json:"asset_name,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// EscalationMatrixEntry is a full runbook escalation row pairing client and provider contacts.
type EscalationMatrixEntry struct {
	ID                int             `json:"id,omitempty"`
	ClientID          int             `json:"client_id"`
	Level             EscalationLevel `json:"level"`
	ClientName        string          `json:"client_name"`
	ClientEmail       string          `json:"client_email"`
	ClientContact     string          `json:"client_contact"`
	ClientDesignation string          `json:"client_designation"`
	GTBName           string          `json:"gtb_name"`
	GTBEmail          string          `json:"gtb_email"`
	GTBContact        string          `json:"gtb_contact"`
	GTBDesignation    string          `json:"gtb_designation"`
}

// ClientDocument names the runbook PDF stored for a client. FileName is empty when none exists.
type ClientDocument struct {
	FileName string `json:"fileName"`
}

// Customer is a roster row shown on the runbook landing table.
type Customer struct {
	ID              int    `json:"id,omitempty"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	OperatingSystem string `json:"operatingSystem"`
	Location        string `json:"location"`
}

// FilterCustomers keeps customers matching term on name, email, OS or location
// (case-insensitive substring) and, when os is set, running exactly that OS.
func FilterCustomers(customers []Customer, term, os string) []Customer {
	needle := strings.ToLower(term)
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		matches := strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.OperatingSystem), needle) ||
			strings.Contains(strings.ToLower(c.Location), needle)
		if !matches {
			continue
		}
		if os != "" && c.OperatingSystem != os {
			continue
		}
		out = append(out, c)
	}
	return out
}

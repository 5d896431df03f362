package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString decodes from either a JSON string or a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Int parses the value as a decimal integer.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	return n, err == nil
}

// KBEntry is one archived support ticket with its solution.
type KBEntry struct {
	ID                   FlexString `json:"ID"`
	Title                string     `json:"Title"`
	Entity               string     `json:"Entity"`
	Status               string     `json:"Status"`
	Priority             string     `json:"Priority"`
	Category             string     `json:"Category"`
	OpeningDate          string     `json:"Opening_Date"`
	ResolutionDate       string     `json:"Resolution_Date"`
	LastUpdated          string     `json:"Last_Updated"`
	LastEditBy           string     `json:"Last_Edit_By"`
	NumberOfDocuments    FlexString `json:"Number_of_Documents"`
	AssignedToTechnician string     `json:"Assigned_To_Technician"`
	FollowupsDescription string     `json:"Followups_Description"`
	Description          string     `json:"Description"`
	SolutionFileName     string     `json:"SolutionFileName,omitempty"`
}

// KBDeleteRequest is the body of POST /api/kb_table-delete.
type KBDeleteRequest struct {
	IDs []FlexString `json:"IDs"`
}

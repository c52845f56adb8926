package dto

import "encoding/json"

// StaffRequest is the back-office dispatcher payload, keyed by
// {entity, action}. Fields is the entity-specific record body, decoded by
// the matching entity handler.
type StaffRequest struct {
	Entity string          `json:"entity"` // destinations | hotels | activities | cars | subscriptions | sos_alerts | users
	Action string          `json:"action"` // list | create | update | delete
	ID     string          `json:"id,omitempty"`
	Fields json.RawMessage `json:"fields,omitempty"`
}

// StaffResponse is the generic dispatcher envelope
type StaffResponse struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	Result any    `json:"result,omitempty"`
}

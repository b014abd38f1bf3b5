package auditlog

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID           string         `json:"id"`
	ActorID      *string        `json:"actor_id,omitempty"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   *string        `json:"resource_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    string         `json:"created_at"`
}

func mapToResponse(row AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:           row.ID.String(),
		Action:       row.Action,
		ResourceType: row.ResourceType,
		CreatedAt:    row.CreatedAt.Format(time.RFC3339),
	}
	if row.UserID != nil {
		v := row.UserID.String()
		resp.ActorID = &v
	}
	if row.ResourceID != nil {
		v := row.ResourceID.String()
		resp.ResourceID = &v
	}
	if len(row.Details) > 0 {
		// Details are stored as jsonb; a row written by an older schema may
		// not decode, in which case it is omitted rather than failing the list.
		var details map[string]any
		if err := json.Unmarshal(row.Details, &details); err == nil {
			resp.Details = details
		}
	}
	return resp
}

func mapToListResponse(rows []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}

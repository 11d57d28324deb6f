package audit

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID          string          `json:"id"`
	ActorID     *string         `json:"actor_id,omitempty"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    *string         `json:"entity_id,omitempty"`
	Description string          `json:"description"`
	OldValues   json.RawMessage `json:"old_values,omitempty"`
	NewValues   json.RawMessage `json:"new_values,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func mapToResponse(row AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:          row.ID.String(),
		Action:      row.Action,
		EntityType:  row.EntityType,
		EntityID:    row.EntityID,
		Description: row.Description,
		OldValues:   row.OldValues,
		NewValues:   row.NewValues,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
	}
	if row.ActorID != nil {
		v := row.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}

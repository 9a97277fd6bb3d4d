package audit

import "time"

type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionUpdate   Action = "UPDATE"
	ActionDelete   Action = "DELETE"
	ActionOverride Action = "OVERRIDE"
	ActionApprove  Action = "APPROVE"
	ActionReject   Action = "REJECT"
)

// Entity types recorded in the trail.
const (
	EntityEmployee   = "Employee"
	EntityAttendance = "Attendance"
	EntityLeave      = "Leave"
)

// Entry is an append-only record of a mutating action.
type Entry struct {
	ID          string
	Action      Action
	ActorUserID string
	EntityType  string
	EntityID    string
	Reason      *string
	Changes     map[string]any
	CreatedAt   time.Time
}

type EntryResponse struct {
	ID          string         `json:"id"`
	Action      Action         `json:"action"`
	ActorUserID string         `json:"actor_user_id"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	Reason      *string        `json:"reason,omitempty"`
	Changes     map[string]any `json:"changes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToResponses(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryResponse(e))
	}
	return out
}

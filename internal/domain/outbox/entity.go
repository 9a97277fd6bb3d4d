package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

const (
	AggregateLeave = "leave_request"

	EventLeaveApproved = "leave.approved"
	EventLeaveRejected = "leave.rejected"

	TopicLeaveDecisions = "hrms.leave.decisions"
)

// Event is a domain event stored alongside the state change that produced it
// and relayed to the broker afterwards.
type Event struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        Status
	RetryCount    int
	NextRetryAt   *time.Time
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEvent builds a pending event with a JSON-encoded payload.
func NewEvent(aggregateType, aggregateID, eventType, topic string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        StatusPending,
	}, nil
}

// LeaveDecision is the payload of leave.approved and leave.rejected.
type LeaveDecision struct {
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveType   string    `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	ActorUserID string    `json:"actor_user_id"`
	Comment     *string   `json:"comment,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

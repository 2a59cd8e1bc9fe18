package model

import (
	"time"

	"github.com/google/uuid"
)

// RelatedType tags the entity kind a notification points back at. The
// reference is lookup-only and carries no ownership.
type RelatedType string

const (
	RelatedAppointment  RelatedType = "appointment"
	RelatedReading      RelatedType = "reading"
	RelatedNote         RelatedType = "note"
	RelatedConsultation RelatedType = "consultation"
	RelatedAlert        RelatedType = "alert"
)

type Notification struct {
	Base
	AccountID   uuid.UUID   `db:"account_id" json:"account_id"`
	Message     string      `db:"message" json:"message"`
	IsRead      bool        `db:"is_read" json:"is_read"`
	RelatedType RelatedType `db:"related_type" json:"related_type,omitempty"`
	RelatedID   *uuid.UUID  `db:"related_id" json:"related_id,omitempty"`
}

// NotificationEvent is what gets published to the in-app channel.
type NotificationEvent struct {
	ID             uuid.UUID   `json:"id"`
	NotificationID uuid.UUID   `json:"notification_id"`
	AccountID      uuid.UUID   `json:"account_id"`
	Message        string      `json:"message"`
	RelatedType    RelatedType `json:"related_type,omitempty"`
	RelatedID      *uuid.UUID  `json:"related_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

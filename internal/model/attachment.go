package model

import (
	"github.com/google/uuid"
)

// Attachment is an uploaded file owned by a patient profile. Deleting the
// record also removes the backing file from the media store.
type Attachment struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	FilePath    string    `db:"file_path" json:"-"`
	FileName    string    `db:"file_name" json:"file_name"`
	Description string    `db:"description" json:"description,omitempty"`

	// Absolute URL when a request context is available, relative path
	// otherwise. Filled by the handler, never stored.
	FileURL string `db:"-" json:"file_url,omitempty"`
}

type UpdateAttachmentRequest struct {
	Description *string `json:"description" validate:"required"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteDoctor is the (patient, doctor) join row. A patient may
// favorite a given doctor at most once.
type FavoriteDoctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type FavoriteResult struct {
	Favorited        bool `json:"favorited"`
	AlreadyFavorited bool `json:"already_favorited"`
}

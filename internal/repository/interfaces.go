package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rahat-sukari/api/internal/model"
)

// ErrNotFound is returned by every repository when a lookup matches no
// live row. Services translate it into the API's not-found error.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

// ErrDuplicate is returned when an insert trips a uniqueness
// constraint, such as an already-registered email or username.
var ErrDuplicate = errDuplicate{}

type errDuplicate struct{}

func (errDuplicate) Error() string { return "record already exists" }

// All repository interfaces in one file
type (
	AccountRepository interface {
		// CreateWithProfile inserts the account and its matching
		// profile in one transaction. Exactly one profile row is
		// created, selected by the account's role flag.
		CreateWithProfile(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByLogin(ctx context.Context, login string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error)
		GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.PatientProfile, error)
		Update(ctx context.Context, patient *model.PatientProfile) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListFollowedBy(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientProfile, error)
	}

	DoctorRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.DoctorProfile, error)
		GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.DoctorProfile, error)
		Update(ctx context.Context, doctor *model.DoctorProfile) error
		List(ctx context.Context) ([]*model.DoctorProfile, error)
		// FollowPatient adds the patient to the doctor's follow list.
		// Adding an already-followed patient is a no-op.
		FollowPatient(ctx context.Context, doctorID, patientID uuid.UUID) error
		IsFollowing(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
	}

	GlucoseReadingRepository interface {
		Create(ctx context.Context, reading *model.GlucoseReading) error
		Get(ctx context.Context, id uuid.UUID) (*model.GlucoseReading, error)
		UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.GlucoseReading, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error)
	}

	DoctorNoteRepository interface {
		Create(ctx context.Context, note *model.DoctorNote) error
		Get(ctx context.Context, id uuid.UUID) (*model.DoctorNote, error)
		Update(ctx context.Context, note *model.DoctorNote) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DoctorNote, error)
		ListByDoctor(ctx context.Context, doctorAccountID uuid.UUID) ([]*model.DoctorNote, error)
	}

	AttachmentRepository interface {
		Create(ctx context.Context, attachment *model.Attachment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
		Update(ctx context.Context, attachment *model.Attachment) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Attachment, error)
	}

	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.Consultation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error)
		Update(ctx context.Context, consultation *model.Consultation) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error)
		ListByDoctor(ctx context.Context, doctorAccountID uuid.UUID) ([]*model.Consultation, error)
	}

	AlertRepository interface {
		Create(ctx context.Context, alert *model.Alert) error
		Get(ctx context.Context, id uuid.UUID) (*model.Alert, error)
		Update(ctx context.Context, alert *model.Alert) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Alert, error)
		// SetActiveForPatient flips is_active on every alert the patient
		// owns in a single statement and reports the rows touched.
		SetActiveForPatient(ctx context.Context, patientID uuid.UUID, active bool) (int64, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Notification, error)
	}

	FavoriteRepository interface {
		// Add inserts the (patient, doctor) row if absent. Returns
		// false when the pair already existed.
		Add(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
		Remove(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.DoctorProfile, error)
		CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int, error)
	}
)

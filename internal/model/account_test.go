package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"two parts", "Budi Santoso", "Budi", "Santoso"},
		{"single word", "Budi", "Budi", ""},
		{"three parts keep remainder", "Siti Nur Aisyah", "Siti", "Nur Aisyah"},
		{"empty", "", "", ""},
		{"tab separator", "Budi\tSantoso", "Budi", "Santoso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestAccountFullName(t *testing.T) {
	a := &Account{FirstName: "Budi", LastName: "Santoso"}
	assert.Equal(t, "Budi Santoso", a.FullName())

	a = &Account{FirstName: "Budi"}
	assert.Equal(t, "Budi", a.FullName())
}

func TestAccountRole(t *testing.T) {
	assert.Equal(t, RoleDoctor, (&Account{IsDoctor: true}).Role())
	assert.Equal(t, RolePatient, (&Account{}).Role())
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.True(t, AppointmentStatusConfirmed.Terminal())
	assert.True(t, AppointmentStatusRejected.Terminal())
}

package bookings

import (
	"context"
	"testing"

	"github.com/doctorsportal/portal/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_UniqueKeyAndQueries(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	b := models.Booking{ID: "1", TreatmentName: "Cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: "9am"}
	require.NoError(t, r.Insert(ctx, &b))

	dup := b
	dup.ID = "2"
	dup.Slot = "10am"
	require.ErrorIs(t, r.Insert(ctx, &dup), ErrDuplicate)

	other := models.Booking{ID: "3", TreatmentName: "Cleaning", Date: "2024-01-02", PatientEmail: "a@x.com", Slot: "9am"}
	require.NoError(t, r.Insert(ctx, &other))

	got, err := r.FindByKey(ctx, b.Key())
	require.NoError(t, err)
	require.Equal(t, "1", got.ID)

	missing, err := r.FindByKey(ctx, models.BookingKey{TreatmentName: "X"})
	require.NoError(t, err)
	require.Nil(t, missing)

	day, err := r.ListByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, day, 1)

	mine, err := r.ListByPatient(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	none, err := r.ListByDate(ctx, "not-a-date")
	require.NoError(t, err)
	require.Empty(t, none)
}

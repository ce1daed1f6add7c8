package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/bookings"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/internal/treatments"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, catalogue []models.Treatment, booked ...models.Booking) (*Engine, *treatments.MemoryRepository) {
	t.Helper()
	trepo := treatments.NewMemoryRepository(catalogue...)
	brepo := bookings.NewMemoryRepository()
	for i := range booked {
		booked[i].ID = booked[i].TreatmentName + booked[i].PatientEmail + booked[i].Date
		require.NoError(t, brepo.Insert(context.Background(), &booked[i]))
	}
	return NewEngine(trepo, brepo), trepo
}

func slotsByName(list []models.Treatment) map[string][]string {
	out := map[string][]string{}
	for _, t := range list {
		out[t.Name] = t.Slots
	}
	return out
}

func TestCompute_RemovesBookedSlot(t *testing.T) {
	e, _ := setup(t,
		[]models.Treatment{{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}},
		models.Booking{TreatmentName: "Cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: "10am"},
	)
	got, err := e.Compute(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, []string{"9am", "11am"}, slotsByName(got)["Cleaning"])
}

func TestCompute_NoBookingsReturnsFullCatalogueInOrder(t *testing.T) {
	catalogue := []models.Treatment{
		{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
		{Name: "Filling", Slots: []string{"2pm", "1pm"}},
		{Name: "Empty", Slots: nil},
	}
	e, _ := setup(t, catalogue,
		models.Booking{TreatmentName: "Cleaning", Date: "2024-01-02", PatientEmail: "a@x.com", Slot: "9am"},
	)
	got, err := e.Compute(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []string{"9am", "10am", "11am"}, got[0].Slots)
	require.Equal(t, []string{"2pm", "1pm"}, got[1].Slots)
	require.Empty(t, got[2].Slots)
	require.NotNil(t, got[2].Slots)
}

func TestCompute_MalformedDateIsLiteralKey(t *testing.T) {
	e, _ := setup(t,
		[]models.Treatment{{Name: "Cleaning", Slots: []string{"9am"}}},
		models.Booking{TreatmentName: "Cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: "9am"},
	)
	got, err := e.Compute(context.Background(), "01/01/2024")
	require.NoError(t, err)
	require.Equal(t, []string{"9am"}, got[0].Slots)
}

func TestCompute_NameMismatchMatchesNothing(t *testing.T) {
	e, _ := setup(t,
		[]models.Treatment{{Name: "Cleaning", Slots: []string{"9am"}}},
		models.Booking{TreatmentName: "cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: "9am"},
	)
	got, err := e.Compute(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, []string{"9am"}, got[0].Slots)
}

func TestCompute_DoesNotMutateCatalogue(t *testing.T) {
	e, trepo := setup(t,
		[]models.Treatment{{Name: "Cleaning", Slots: []string{"9am", "10am"}}},
		models.Booking{TreatmentName: "Cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: "9am"},
	)
	_, err := e.Compute(context.Background(), "2024-01-01")
	require.NoError(t, err)
	stored, err := trepo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"9am", "10am"}, stored[0].Slots)
}

func TestRemaining_IsOrderPreservingSubsequence(t *testing.T) {
	catalogue := []models.Treatment{{Name: "X", Slots: []string{"a", "b", "c", "d", "e"}}}
	booked := []models.Booking{
		{TreatmentName: "X", Slot: "d"},
		{TreatmentName: "X", Slot: "b"},
		{TreatmentName: "X", Slot: "zz"},
		{TreatmentName: "Y", Slot: "a"},
	}
	got := Remaining(catalogue, booked)
	require.Equal(t, []string{"a", "c", "e"}, got[0].Slots)

	// every output slot appears in the configured order
	j := 0
	for _, s := range got[0].Slots {
		for j < len(catalogue[0].Slots) && catalogue[0].Slots[j] != s {
			j++
		}
		require.Less(t, j, len(catalogue[0].Slots), "slot %q out of order", s)
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, catalogue[0].Slots)
}

type brokenBookings struct{}

func (brokenBookings) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, apperr.ErrUnavailable
}

func TestCompute_PropagatesUnavailable(t *testing.T) {
	e := NewEngine(treatments.NewMemoryRepository(), brokenBookings{})
	_, err := e.Compute(context.Background(), "2024-01-01")
	require.True(t, errors.Is(err, apperr.ErrUnavailable))
}

func TestNames(t *testing.T) {
	e, _ := setup(t, []models.Treatment{{Name: "Cleaning"}, {Name: "Filling"}})
	names, err := e.Names(context.Background())
	require.NoError(t, err)
	require.Len(t, names, 2)
	require.Equal(t, "Filling", names[1].Name)
}

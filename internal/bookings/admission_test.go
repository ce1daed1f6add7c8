package bookings

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleaning(slot string) models.Booking {
	return models.Booking{TreatmentName: "Cleaning", Date: "2024-01-01", PatientEmail: "a@x.com", Slot: slot}
}

func TestAdmit_CreatesThenRejectsSameDayDifferentSlot(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first := cleaning("10am")
	first.Extra = map[string]interface{}{"patientName": "Ann"}
	res, err := svc.Admit(ctx, first)
	require.NoError(t, err)
	require.Equal(t, Created, res.Outcome)
	require.NotEmpty(t, res.Booking.ID)
	originalID := res.Booking.ID

	res2, err := svc.Admit(ctx, cleaning("11am"))
	require.NoError(t, err)
	require.Equal(t, Duplicate, res2.Outcome)
	require.Equal(t, originalID, res2.Booking.ID)
	require.Equal(t, "10am", res2.Booking.Slot)
	require.Equal(t, "Ann", res2.Booking.Extra["patientName"])

	list, err := svc.ListForPatient(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAdmit_DifferentKeyPartsAreIndependent(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	base := cleaning("10am")

	otherDate := base
	otherDate.Date = "2024-01-02"
	otherTreatment := base
	otherTreatment.TreatmentName = "Filling"
	otherPatient := base
	otherPatient.PatientEmail = "b@x.com"

	for _, b := range []models.Booking{base, otherDate, otherTreatment, otherPatient} {
		res, err := svc.Admit(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, Created, res.Outcome, "booking %+v", b)
	}
}

func TestAdmit_ValidatesRequiredFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, err := svc.Admit(context.Background(), models.Booking{TreatmentName: "Cleaning"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.Contains(t, err.Error(), "patientEmail")
}

func TestAdmit_RejectsOperatorAndPathFieldNames(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	extras := []map[string]interface{}{
		{"$where": "1"},
		{"contact.phone": "555"},
		{"contact": map[string]interface{}{"$gt": ""}},
		{"notes": []interface{}{map[string]interface{}{"a.b": 1}}},
	}
	for _, extra := range extras {
		b := cleaning("10am")
		b.Extra = extra
		_, err := svc.Admit(ctx, b)
		require.ErrorIs(t, err, apperr.ErrInvalidInput, "extra %v", extra)
	}
	list, err := repo.ListByPatient(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, list)

	b := cleaning("10am")
	b.Extra = map[string]interface{}{"contact": map[string]interface{}{"phone": "555"}}
	res, err := svc.Admit(ctx, b)
	require.NoError(t, err)
	require.Equal(t, Created, res.Outcome)
}

func TestAdmit_ConcurrentIdenticalRequestsCreateOnce(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	outcomes := make([]Outcome, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Admit(ctx, cleaning(fmt.Sprintf("slot-%d", i)))
			errs[i] = err
			if res != nil {
				outcomes[i] = res.Outcome
			}
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range outcomes {
		require.NoError(t, errs[i])
		if outcomes[i] == Created {
			created++
		}
	}
	require.Equal(t, 1, created)
}

// racingRepo hides the winner from the first lookup, as a second request
// would see it when both check before either inserts.
type racingRepo struct {
	*MemoryRepository
	lookups int
}

func (r *racingRepo) FindByKey(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, nil
	}
	return r.MemoryRepository.FindByKey(ctx, key)
}

func TestAdmit_InsertRaceReportsDuplicate(t *testing.T) {
	mem := NewMemoryRepository()
	winner := cleaning("9am")
	winner.ID = "winner"
	require.NoError(t, mem.Insert(context.Background(), &winner))

	svc := NewService(&racingRepo{MemoryRepository: mem})
	res, err := svc.Admit(context.Background(), cleaning("11am"))
	require.NoError(t, err)
	require.Equal(t, Duplicate, res.Outcome)
	require.Equal(t, "winner", res.Booking.ID)
}

type failingRepo struct{ *MemoryRepository }

func (failingRepo) FindByKey(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	return nil, fmt.Errorf("find booking: %w", apperr.ErrUnavailable)
}

func TestAdmit_StoreUnavailable(t *testing.T) {
	svc := NewService(failingRepo{NewMemoryRepository()})
	_, err := svc.Admit(context.Background(), cleaning("9am"))
	require.ErrorIs(t, err, apperr.ErrUnavailable)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "created", Created.String())
	require.Equal(t, "duplicate", Duplicate.String())
	require.Equal(t, "unknown", Outcome(0).String())
}

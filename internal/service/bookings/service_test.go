package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StorageService/internal/service/bookings/models"
)

// Тестовые фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	statuses map[int64]domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		statuses: make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByLessee(_ context.Context, lesseeID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.LesseeID != lesseeID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) ListHolding(_ context.Context) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.Status.IsHolding() {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statuses[id] = status
	f.bookings[id].Status = status
	return nil
}

type fakeSpaceRepo struct {
	released []int64
}

func (f *fakeSpaceRepo) ReleaseShelves(_ context.Context, bookingID int64) error {
	f.released = append(f.released, bookingID)
	return nil
}

type passThroughTxManager struct{}

func (passThroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passThroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func newService(repo *fakeBookingRepo, spaces *fakeSpaceRepo, now time.Time) *Service {
	return NewService(repo, spaces, passThroughTxManager{}, fixedClock{now: now}, nopLogger{})
}

func TestCancel_Success(t *testing.T) {
	repo := newFakeBookingRepo(&domain.Booking{
		ID:        1,
		LesseeID:  7,
		StartDate: testDate(10),
		EndDate:   testDate(15),
		Status:    domain.StatusBooked,
	})
	spaces := &fakeSpaceRepo{}

	svc := newService(repo, spaces, testDate(5))

	resp, err := svc.Cancel(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.statuses[1])
	assert.Equal(t, []int64{1}, spaces.released)
}

func TestCancel_ActiveBookingCanBeCancelled(t *testing.T) {
	repo := newFakeBookingRepo(&domain.Booking{
		ID:        1,
		LesseeID:  7,
		StartDate: testDate(10),
		EndDate:   testDate(15),
		Status:    domain.StatusBooked,
	})
	spaces := &fakeSpaceRepo{}

	// Текущая дата внутри периода: статус сначала приводится к ACTIVE
	svc := newService(repo, spaces, testDate(12))

	resp, err := svc.Cancel(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_ExpiredBookingRejected(t *testing.T) {
	repo := newFakeBookingRepo(&domain.Booking{
		ID:        1,
		LesseeID:  7,
		StartDate: testDate(10),
		EndDate:   testDate(15),
		Status:    domain.StatusBooked, // строка не обновлялась, но период истек
	})
	spaces := &fakeSpaceRepo{}

	svc := newService(repo, spaces, testDate(20))

	_, err := svc.Cancel(context.Background(), 1, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBookingTransition)
	assert.Empty(t, spaces.released)
}

func TestCancel_NotOwner(t *testing.T) {
	repo := newFakeBookingRepo(&domain.Booking{
		ID:        1,
		LesseeID:  7,
		StartDate: testDate(10),
		EndDate:   testDate(15),
		Status:    domain.StatusBooked,
	})

	svc := newService(repo, &fakeSpaceRepo{}, testDate(5))

	_, err := svc.Cancel(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeSpaceRepo{}, testDate(5))

	_, err := svc.Cancel(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRefreshStatuses(t *testing.T) {
	repo := newFakeBookingRepo(
		// Начинается сегодня: BOOKED -> ACTIVE
		&domain.Booking{ID: 1, LesseeID: 7, StartDate: testDate(12), EndDate: testDate(15), Status: domain.StatusBooked},
		// Истекло вчера: ACTIVE -> PAST, полки освобождаются
		&domain.Booking{ID: 2, LesseeID: 7, StartDate: testDate(5), EndDate: testDate(11), Status: domain.StatusActive},
		// Ещё не началось: остается BOOKED
		&domain.Booking{ID: 3, LesseeID: 7, StartDate: testDate(20), EndDate: testDate(25), Status: domain.StatusBooked},
	)
	spaces := &fakeSpaceRepo{}

	svc := newService(repo, spaces, testDate(12))

	result, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 1, result.Activated)
	assert.Equal(t, 1, result.Expired)

	assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)
	assert.Equal(t, domain.StatusPast, repo.bookings[2].Status)
	assert.Equal(t, domain.StatusBooked, repo.bookings[3].Status)

	// Полки освобождает только истекшее бронирование
	assert.Equal(t, []int64{2}, spaces.released)
}

func TestRefreshStatuses_Idempotent(t *testing.T) {
	repo := newFakeBookingRepo(
		&domain.Booking{ID: 1, LesseeID: 7, StartDate: testDate(10), EndDate: testDate(15), Status: domain.StatusBooked},
	)
	spaces := &fakeSpaceRepo{}

	svc := newService(repo, spaces, testDate(12))

	first, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Activated)

	// Повторный вызов в тот же день ничего не меняет
	second, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Activated)
	assert.Equal(t, 0, second.Expired)
	assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)
}

func TestGetByID_OwnerOnly(t *testing.T) {
	repo := newFakeBookingRepo(&domain.Booking{
		ID:        1,
		LesseeID:  7,
		StartDate: testDate(10),
		EndDate:   testDate(15),
		Status:    domain.StatusBooked,
	})

	svc := newService(repo, &fakeSpaceRepo{}, testDate(5))

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_InvalidStatusFilter(t *testing.T) {
	svc := newService(newFakeBookingRepo(), &fakeSpaceRepo{}, testDate(5))

	bad := "EXPIRED"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{LesseeID: 7, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

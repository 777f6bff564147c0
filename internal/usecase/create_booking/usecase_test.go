package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// Тестовые фейки

type fakeBookingRepo struct {
	overlapping []*domain.Booking
	created     *domain.Booking
	nextID      int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.overlapping, nil
}

type fakeSpaceRepo struct {
	space    *domain.Space
	racks    []domain.Rack
	shelves  []domain.Shelf
	occupied []int64
}

func (f *fakeSpaceRepo) GetSpaceByID(_ context.Context, _ int64) (*domain.Space, error) {
	if f.space == nil {
		return nil, assertNotFound
	}
	return f.space, nil
}

func (f *fakeSpaceRepo) ListRacks(_ context.Context, _ int64) ([]domain.Rack, error) {
	return f.racks, nil
}

func (f *fakeSpaceRepo) ListShelves(_ context.Context, _ int64) ([]domain.Shelf, error) {
	return f.shelves, nil
}

func (f *fakeSpaceRepo) OccupyShelves(_ context.Context, _ int64, shelfIDs []int64) error {
	f.occupied = shelfIDs
	return nil
}

var assertNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

// passThroughTxManager выполняет fn без настоящей транзакции
type passThroughTxManager struct{}

func (passThroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func newTestSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{
		space: &domain.Space{
			ID:          1,
			RenterID:    100,
			Area:        "TPY",
			Status:      domain.SpaceStatusApproved,
			PricePerDay: 2.50,
		},
		racks: []domain.Rack{
			{ID: 1, SpaceID: 1, Position: 1},
			{ID: 2, SpaceID: 1, Position: 2},
		},
		shelves: []domain.Shelf{
			{ID: 10, RackID: 1, Position: 1},
			{ID: 11, RackID: 1, Position: 2},
			{ID: 12, RackID: 1, Position: 3},
			{ID: 13, RackID: 1, Position: 4},
			{ID: 20, RackID: 2, Position: 1},
			{ID: 21, RackID: 2, Position: 2},
		},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	spaceRepo := newTestSpaceRepo()

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "BOOKED", resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	// 2 полки x 3 дня x 2.50
	assert.InDelta(t, 15.0, resp.TotalPrice, 1e-9)

	// Best fit: стеллаж 2 с двумя свободными полками вместо стеллажа 1 с четырьмя
	assert.Equal(t, int64(2), resp.RackID)
	assert.Equal(t, []int64{20, 21}, resp.ShelfIDs)
	assert.Equal(t, resp.ShelfIDs, spaceRepo.occupied)
}

func TestCreateBooking_NonOverlappingBookingDoesNotBlock(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 1}
	spaceRepo := newTestSpaceRepo()

	// GetOverlapping уже отфильтровал по датам: непересекающихся
	// бронирований в выдаче нет, даже если полки числятся занятыми
	for i := range spaceRepo.shelves {
		spaceRepo.shelves[i].IsOccupied = true
	}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(20),
		EndDate:    testDate(25),
		NumShelves: 2,
	})
	require.NoError(t, err)
	assert.Len(t, resp.ShelfIDs, 2)
}

func TestCreateBooking_OverlappingBookingBlocksShelves(t *testing.T) {
	spaceRepo := newTestSpaceRepo()
	bookingRepo := &fakeBookingRepo{
		nextID: 1,
		overlapping: []*domain.Booking{
			{Status: domain.StatusActive, ShelfIDs: []int64{20, 21}},
		},
	}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 2,
	})
	require.NoError(t, err)

	// Стеллаж 2 занят пересекающимся бронированием, остается стеллаж 1
	assert.Equal(t, int64(1), resp.RackID)
	assert.Equal(t, []int64{10, 11}, resp.ShelfIDs)
}

func TestCreateBooking_NoFit(t *testing.T) {
	spaceRepo := newTestSpaceRepo()
	bookingRepo := &fakeBookingRepo{nextID: 1}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 5,
	})
	assert.ErrorIs(t, err, ErrNoFit)
	assert.Nil(t, bookingRepo.created)
}

func TestCreateBooking_NoContiguousBlock(t *testing.T) {
	spaceRepo := newTestSpaceRepo()
	// Стеллаж 1: заняты позиции 2 и 4, свободны 1 и 3 - смежных нет.
	// Стеллаж 2 занят целиком.
	bookingRepo := &fakeBookingRepo{
		nextID: 1,
		overlapping: []*domain.Booking{
			{Status: domain.StatusBooked, ShelfIDs: []int64{11, 13}},
			{Status: domain.StatusBooked, ShelfIDs: []int64{20, 21}},
		},
	}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 2,
	})
	assert.ErrorIs(t, err, ErrNoContiguousBlock)
}

func TestCreateBooking_SpaceNotBookable(t *testing.T) {
	spaceRepo := newTestSpaceRepo()
	spaceRepo.space.Status = domain.SpaceStatusOnHold
	bookingRepo := &fakeBookingRepo{nextID: 1}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 1,
	})
	assert.ErrorIs(t, err, ErrSpaceNotAvailable)
}

func TestCreateBooking_InvalidQuantityRejectedBeforeRepo(t *testing.T) {
	spaceRepo := newTestSpaceRepo()
	bookingRepo := &fakeBookingRepo{nextID: 1}

	uc := NewUseCase(bookingRepo, spaceRepo, passThroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Nil(t, bookingRepo.created)
	assert.Nil(t, spaceRepo.occupied)
}

func TestCreateBooking_EndBeforeStart(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, newTestSpaceRepo(), passThroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID:    1,
		LesseeID:   7,
		StartDate:  testDate(12),
		EndDate:    testDate(10),
		NumShelves: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

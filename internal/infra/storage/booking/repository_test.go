package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testDate(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO bookings (lessee_id,space_id,rack_id,start_date,end_date,num_shelves,total_price,status) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at, updated_at")).
		WithArgs(int64(7), int64(1), int64(2), testDate(10), testDate(12), 2, 15.0, domain.StatusBooked).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO booking_shelves (booking_id,shelf_id) VALUES ($1,$2),($3,$4)")).
		WithArgs(int64(42), int64(20), int64(42), int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.Create(context.Background(), &domain.Booking{
		LesseeID:   7,
		SpaceID:    1,
		RackID:     2,
		StartDate:  testDate(10),
		EndDate:    testDate(12),
		NumShelves: 2,
		ShelfIDs:   []int64{20, 21},
		TotalPrice: 15.0,
		Status:     domain.StatusBooked,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	columns := []string{
		"id", "lessee_id", "space_id", "rack_id", "start_date", "end_date",
		"num_shelves", "total_price", "status", "created_at", "updated_at",
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, lessee_id, space_id, rack_id, start_date, end_date, num_shelves, total_price, status, created_at, updated_at "+
			"FROM bookings WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(42, 7, 1, 2, testDate(10), testDate(12), 2, 15.0, "BOOKED", now, now))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT bs.shelf_id FROM booking_shelves bs JOIN shelves s ON s.id = bs.shelf_id "+
			"WHERE bs.booking_id = $1 ORDER BY s.position ASC")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"shelf_id"}).AddRow(20).AddRow(21))

	booking, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, domain.StatusBooked, booking.Status)
	assert.Equal(t, []int64{20, 21}, booking.ShelfIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT .* FROM bookings").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusCancelled, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE bookings").
		WithArgs(domain.StatusCancelled, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 404, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetOverlapping(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	columns := []string{
		"id", "lessee_id", "space_id", "rack_id", "start_date", "end_date",
		"num_shelves", "total_price", "status", "created_at", "updated_at", "shelf_ids",
	}

	mock.ExpectQuery("SELECT b.id, b.lessee_id, .* FROM bookings b LEFT JOIN booking_shelves bs ON bs.booking_id = b.id").
		WithArgs(int64(1), "BOOKED", "ACTIVE", testDate(20), testDate(15)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, 7, 1, 2, testDate(12), testDate(18), 2, 20.0, "ACTIVE", now, now, "{20,21}"))

	bookings, err := repo.GetOverlapping(context.Background(), 1, testDate(15), testDate(20))
	require.NoError(t, err)

	require.Len(t, bookings, 1)
	assert.Equal(t, []int64{20, 21}, bookings[0].ShelfIDs)
	assert.Equal(t, domain.StatusActive, bookings[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

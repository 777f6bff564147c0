package spaces

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/space"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

// Тестовые фейки

type fakeSpaceRepo struct {
	spaces       map[int64]*domain.Space
	racks        []domain.Rack
	shelves      []domain.Shelf
	availability map[int64]int
	lastFilter   domain.SpaceFilter
	deleted      []int64
	statusByID   map[int64]domain.SpaceStatus
}

func newFakeSpaceRepo(spaces ...*domain.Space) *fakeSpaceRepo {
	repo := &fakeSpaceRepo{
		spaces:       make(map[int64]*domain.Space),
		availability: make(map[int64]int),
		statusByID:   make(map[int64]domain.SpaceStatus),
	}
	for _, s := range spaces {
		repo.spaces[s.ID] = s
	}
	return repo
}

func (f *fakeSpaceRepo) GetSpaceByID(_ context.Context, id int64) (*domain.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return s, nil
}

func (f *fakeSpaceRepo) ListSpaces(_ context.Context, filter domain.SpaceFilter) ([]*domain.Space, error) {
	f.lastFilter = filter
	var result []*domain.Space
	for _, s := range f.spaces {
		if filter.RenterID != nil && s.RenterID != *filter.RenterID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeSpaceRepo) ListRacks(_ context.Context, _ int64) ([]domain.Rack, error) {
	return f.racks, nil
}

func (f *fakeSpaceRepo) ListShelves(_ context.Context, _ int64) ([]domain.Shelf, error) {
	return f.shelves, nil
}

func (f *fakeSpaceRepo) MaxAvailableShelves(_ context.Context, spaceID int64) (int, error) {
	return f.availability[spaceID], nil
}

func (f *fakeSpaceRepo) UpdateSpaceStatus(_ context.Context, id int64, status domain.SpaceStatus) error {
	f.statusByID[id] = status
	return nil
}

func (f *fakeSpaceRepo) DeleteSpace(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func approvedSpace(id int64, rate float64) *domain.Space {
	return &domain.Space{
		ID:          id,
		RenterID:    100,
		Area:        "TPY",
		Status:      domain.SpaceStatusApproved,
		PricePerDay: rate,
	}
}

func TestSearch_NormalizesLengthAndWidth(t *testing.T) {
	repo := newFakeSpaceRepo(approvedSpace(1, 6.99))
	repo.availability[1] = 3

	svc := NewService(repo, nopLogger{})

	// width > length: стороны меняются местами, длина 120 см -> 3 полки по 50 см
	resp, err := svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 40,
		Width:  120,
		Height: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.ShelvesNeeded)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 3*6.99, resp.Results[0].EstimatedPrice, 1e-9)
}

func TestSearch_ItemTooDeepOrTooTall(t *testing.T) {
	repo := newFakeSpaceRepo(approvedSpace(1, 6.99))
	repo.availability[1] = 10

	svc := NewService(repo, nopLogger{})

	// Глубина больше полки (46 см)
	resp, err := svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 100,
		Width:  50,
		Height: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	// Высота больше просвета (42 см)
	resp, err = svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 100,
		Width:  40,
		Height: 50,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_FiltersByAvailability(t *testing.T) {
	repo := newFakeSpaceRepo(approvedSpace(1, 6.99), approvedSpace(2, 4.50))
	repo.availability[1] = 1 // не хватает под 2 полки
	repo.availability[2] = 2

	svc := NewService(repo, nopLogger{})

	resp, err := svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 80, // 2 полки
		Width:  40,
		Height: 30,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(2), resp.Results[0].Space.ID)
}

func TestSearch_OnlyApprovedSpaces(t *testing.T) {
	pending := approvedSpace(3, 6.99)
	pending.Status = domain.SpaceStatusPending

	repo := newFakeSpaceRepo(approvedSpace(1, 6.99), pending)
	repo.availability[1] = 5
	repo.availability[3] = 5

	svc := NewService(repo, nopLogger{})

	resp, err := svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 40,
		Width:  30,
		Height: 30,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.SpaceStatusApproved, *repo.lastFilter.Status)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(1), resp.Results[0].Space.ID)
}

func TestSearch_InvalidDimensions(t *testing.T) {
	svc := NewService(newFakeSpaceRepo(), nopLogger{})

	_, err := svc.Search(context.Background(), &models.SearchSpacesRequest{
		Length: 0,
		Width:  40,
		Height: 30,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_FSM(t *testing.T) {
	space := approvedSpace(1, 6.99)
	repo := newFakeSpaceRepo(space)

	svc := NewService(repo, nopLogger{})

	// APPROVED -> ON_HOLD разрешен
	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RenterID: 100,
		Status:   string(domain.SpaceStatusOnHold),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SpaceStatusOnHold), resp.Status)
	assert.Equal(t, domain.SpaceStatusOnHold, repo.statusByID[1])

	// ON_HOLD -> REJECTED запрещен
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RenterID: 100,
		Status:   string(domain.SpaceStatusRejected),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSpaceTransition)
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	repo := newFakeSpaceRepo(approvedSpace(1, 6.99))
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		RenterID: 999,
		Status:   string(domain.SpaceStatusOnHold),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete(t *testing.T) {
	repo := newFakeSpaceRepo(approvedSpace(1, 6.99))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1, 100))
	assert.Equal(t, []int64{1}, repo.deleted)

	err := svc.Delete(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

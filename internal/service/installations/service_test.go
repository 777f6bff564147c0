package installations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	installationRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/installation"
	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

type fakeInstallationRepo struct {
	requests map[int64]*domain.InstallationRequest
	nextID   int64
}

func newFakeInstallationRepo() *fakeInstallationRepo {
	return &fakeInstallationRepo{
		requests: make(map[int64]*domain.InstallationRequest),
		nextID:   1,
	}
}

func (f *fakeInstallationRepo) Create(_ context.Context, request *domain.InstallationRequest) (*domain.InstallationRequest, error) {
	created := *request
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.requests[created.ID] = &created
	f.nextID++
	return &created, nil
}

func (f *fakeInstallationRepo) GetByID(_ context.Context, id int64) (*domain.InstallationRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, installationRepo.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeInstallationRepo) ListByRenter(_ context.Context, renterID *int64) ([]*domain.InstallationRequest, error) {
	var result []*domain.InstallationRequest
	for _, request := range f.requests {
		if renterID != nil && request.RenterID != *renterID {
			continue
		}
		copied := *request
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeInstallationRepo) UpdateStatus(_ context.Context, id int64, status domain.InstallationStatus) error {
	request, ok := f.requests[id]
	if !ok {
		return installationRepo.ErrRequestNotFound
	}
	request.Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Create(t *testing.T) {
	repo := newFakeInstallationRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateRequestRequest{
		RenterID:              7,
		Area:                  "TPY",
		EnvironmentConditions: string(domain.EnvironmentIndoor),
		NumRacks:              2,
		NumShelvesPerRack:     3,
		Description:           "warehouse corner",
	})
	require.NoError(t, err)

	assert.Equal(t, "TPY", resp.Area)
	assert.Equal(t, "Toa Payoh", resp.AreaName)
	assert.Equal(t, string(domain.InstallationPending), resp.Status)
	assert.Equal(t, 6, resp.TotalShelves)
	assert.Greater(t, resp.PricePerDay, 0.0)

	stored := repo.requests[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, resp.PricePerDay, stored.PricePerDay)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateRequestRequest
		wantErr error
	}{
		{
			name: "unknown area",
			req: &models.CreateRequestRequest{
				RenterID:              7,
				Area:                  "XXX",
				EnvironmentConditions: string(domain.EnvironmentIndoor),
				NumRacks:              1,
				NumShelvesPerRack:     1,
			},
			wantErr: ErrUnknownArea,
		},
		{
			name: "unknown environment",
			req: &models.CreateRequestRequest{
				RenterID:              7,
				Area:                  "TPY",
				EnvironmentConditions: "UNDERWATER",
				NumRacks:              1,
				NumShelvesPerRack:     1,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "zero racks",
			req: &models.CreateRequestRequest{
				RenterID:              7,
				Area:                  "TPY",
				EnvironmentConditions: string(domain.EnvironmentIndoor),
				NumRacks:              0,
				NumShelvesPerRack:     3,
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "zero shelves per rack",
			req: &models.CreateRequestRequest{
				RenterID:              7,
				Area:                  "TPY",
				EnvironmentConditions: string(domain.EnvironmentIndoor),
				NumRacks:              2,
				NumShelvesPerRack:     0,
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "missing renter",
			req: &models.CreateRequestRequest{
				Area:                  "TPY",
				EnvironmentConditions: string(domain.EnvironmentIndoor),
				NumRacks:              1,
				NumShelvesPerRack:     1,
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeInstallationRepo()
			svc := NewService(repo, nopLogger{})

			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.requests)
		})
	}
}

func TestService_Review(t *testing.T) {
	tests := []struct {
		name       string
		from       domain.InstallationStatus
		approve    bool
		wantStatus domain.InstallationStatus
		wantErr    error
	}{
		{name: "approve pending", from: domain.InstallationPending, approve: true, wantStatus: domain.InstallationApproved},
		{name: "reject pending", from: domain.InstallationPending, approve: false, wantStatus: domain.InstallationRejected},
		{name: "approve already approved", from: domain.InstallationApproved, approve: true, wantErr: domain.ErrInvalidInstallationTransition},
		{name: "reject rejected", from: domain.InstallationRejected, approve: false, wantErr: domain.ErrInvalidInstallationTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeInstallationRepo()
			repo.requests[1] = &domain.InstallationRequest{
				ID:                    1,
				RenterID:              7,
				Area:                  "TPY",
				EnvironmentConditions: domain.EnvironmentIndoor,
				Status:                tt.from,
				NumRacks:              2,
				NumShelvesPerRack:     3,
				PricePerDay:           6.99,
			}
			svc := NewService(repo, nopLogger{})

			resp, err := svc.Review(context.Background(), 1, &models.ReviewRequestRequest{Approve: tt.approve})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.requests[1].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)
			assert.Equal(t, tt.wantStatus, repo.requests[1].Status)
		})
	}
}

func TestService_Review_NotFound(t *testing.T) {
	svc := NewService(newFakeInstallationRepo(), nopLogger{})

	_, err := svc.Review(context.Background(), 404, &models.ReviewRequestRequest{Approve: true})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestService_ListByRenter(t *testing.T) {
	repo := newFakeInstallationRepo()
	repo.requests[1] = &domain.InstallationRequest{ID: 1, RenterID: 7, Area: "TPY", Status: domain.InstallationPending, NumRacks: 1, NumShelvesPerRack: 1}
	repo.requests[2] = &domain.InstallationRequest{ID: 2, RenterID: 8, Area: "BDK", Status: domain.InstallationPending, NumRacks: 1, NumShelvesPerRack: 1}
	svc := NewService(repo, nopLogger{})

	renterID := int64(7)
	resp, err := svc.ListByRenter(context.Background(), &renterID)
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, int64(1), resp.Requests[0].ID)

	all, err := svc.ListByRenter(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Requests, 2)
}

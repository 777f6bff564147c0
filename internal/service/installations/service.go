package installations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	installationRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/installation"
	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

// Service сервис для работы с заявками на монтаж стеллажей
type Service struct {
	installRepo InstallationRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(installRepo InstallationRepository, logger Logger) *Service {
	return &Service{
		installRepo: installRepo,
		logger:      logger,
	}
}

// Create создает новую заявку на монтаж.
// Район должен быть из справочника локаций; ставка за полку берется из
// справочника, а не из запроса.
func (s *Service) Create(ctx context.Context, req *models.CreateRequestRequest) (*models.InstallationRequestResponse, error) {
	s.logger.Info("Create: new request from renter=%d, area=%s, racks=%d, shelvesPerRack=%d",
		req.RenterID, req.Area, req.NumRacks, req.NumShelvesPerRack)

	if req.RenterID <= 0 {
		return nil, fmt.Errorf("%w: renterID must be positive", ErrInvalidInput)
	}

	if req.NumRacks < 1 {
		return nil, fmt.Errorf("%w: rack count must be at least 1, got %d", domain.ErrInvalidQuantity, req.NumRacks)
	}
	if req.NumShelvesPerRack < 1 {
		return nil, fmt.Errorf("%w: shelves per rack must be at least 1, got %d", domain.ErrInvalidQuantity, req.NumShelvesPerRack)
	}

	environment := domain.EnvironmentConditions(req.EnvironmentConditions)
	if !domain.IsValidEnvironment(environment) {
		s.logger.Warn("Create: invalid environment=%s from renter=%d", req.EnvironmentConditions, req.RenterID)
		return nil, fmt.Errorf("%w: unknown environment conditions %q", ErrInvalidInput, req.EnvironmentConditions)
	}

	location, ok := domain.LocationByArea(req.Area)
	if !ok {
		s.logger.Warn("Create: unknown area=%s from renter=%d", req.Area, req.RenterID)
		return nil, fmt.Errorf("%w: %s", ErrUnknownArea, req.Area)
	}

	request := &domain.InstallationRequest{
		RenterID:              req.RenterID,
		Area:                  location.Area,
		EnvironmentConditions: environment,
		Status:                domain.InstallationPending,
		NumRacks:              req.NumRacks,
		NumShelvesPerRack:     req.NumShelvesPerRack,
		PricePerDay:           location.PricePerDay,
		Description:           req.Description,
	}

	created, err := s.installRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created request id=%d", created.ID)
	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InstallationRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d", id)

	request, err := s.installRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, installationRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequest(request), nil
}

// ListByRenter получает заявки владельца; nil renterID возвращает все
// заявки (для модератора)
func (s *Service) ListByRenter(ctx context.Context, renterID *int64) (*models.InstallationRequestListResponse, error) {
	s.logger.Info("ListByRenter: fetching requests, renter=%v", renterID)

	requests, err := s.installRepo.ListByRenter(ctx, renterID)
	if err != nil {
		s.logger.Error("ListByRenter: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByRenter - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRenter: successfully fetched %d requests", len(requests))
	return models.FromDomainRequestList(requests), nil
}

// Review выносит решение по заявке: PENDING -> APPROVED или REJECTED.
// Любое другое исходное состояние отклоняется правилами FSM.
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewRequestRequest) (*models.InstallationRequestResponse, error) {
	target := domain.InstallationRejected
	if req.Approve {
		target = domain.InstallationApproved
	}
	s.logger.Info("Review: request id=%d -> %s", id, target)

	request, err := s.installRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, installationRepo.ErrRequestNotFound) {
			s.logger.Warn("Review: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Review: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Review - repository error: %v", ErrInternal, err)
	}

	if err := request.Transition(target); err != nil {
		s.logger.Warn("Review: invalid transition for request id=%d: %v", id, err)
		return nil, err
	}

	if err := s.installRepo.UpdateStatus(ctx, id, target); err != nil {
		s.logger.Error("Review: failed to update request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Review - failed to update: %v", ErrInternal, err)
	}

	s.logger.Info("Review: request id=%d moved to %s", id, target)
	return models.FromDomainRequest(request), nil
}

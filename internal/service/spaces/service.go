package spaces

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/space"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
	"github.com/m04kA/SMC-StorageService/pkg/ptr"
)

// Service сервис для работы с площадками хранения
type Service struct {
	spaceRepo SpaceRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(spaceRepo SpaceRepository, logger Logger) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		logger:    logger,
	}
}

// GetByID получает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	s.logger.Info("GetByID: fetching space id=%d", id)

	space, err := s.spaceRepo.GetSpaceByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("GetByID: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("GetByID: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpace(space), nil
}

// ListByRenter получает все площадки владельца
func (s *Service) ListByRenter(ctx context.Context, renterID int64) (*models.SpaceListResponse, error) {
	s.logger.Info("ListByRenter: fetching spaces for renter=%d", renterID)

	spaces, err := s.spaceRepo.ListSpaces(ctx, domain.SpaceFilter{RenterID: ptr.Ptr(renterID)})
	if err != nil {
		s.logger.Error("ListByRenter: repository error for renter=%d: %v", renterID, err)
		return nil, fmt.Errorf("%w: ListByRenter - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRenter: successfully fetched %d spaces for renter=%d", len(spaces), renterID)
	return models.FromDomainSpaceList(spaces), nil
}

// Search подбирает одобренные площадки, способные вместить предмет
// заданных габаритов. Предмет кладется вдоль полки: большая из сторон
// length/width считается длиной и растягивается на несколько смежных
// полок, меньшая должна влезть в глубину полки, высота в просвет.
func (s *Service) Search(ctx context.Context, req *models.SearchSpacesRequest) (*models.SearchResponse, error) {
	s.logger.Info("Search: length=%.1f, width=%.1f, height=%.1f, area=%v",
		req.Length, req.Width, req.Height, req.Area)

	if req.Length <= 0 || req.Width <= 0 || req.Height <= 0 {
		s.logger.Warn("Search: non-positive dimensions")
		return nil, fmt.Errorf("%w: dimensions must be positive", ErrInvalidInput)
	}

	// Нормализация: длина всегда большая из двух горизонтальных сторон
	length, width := req.Length, req.Width
	if width > length {
		length, width = width, length
	}

	// Предмет, не влезающий в глубину или в просвет полки, не хранится нигде
	if width > domain.ShelfWidth || req.Height > domain.ShelfHeight {
		s.logger.Info("Search: item does not fit shelf profile, returning empty result")
		return &models.SearchResponse{Results: []models.SearchResultResponse{}}, nil
	}

	shelvesNeeded := int(math.Ceil(length / domain.ShelfLength))
	if shelvesNeeded < 1 {
		shelvesNeeded = 1
	}

	// Ищем только среди одобренных площадок
	filter := domain.SpaceFilter{
		Status:       ptr.Ptr(domain.SpaceStatusApproved),
		AreaContains: req.Area,
	}

	spaces, err := s.spaceRepo.ListSpaces(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	results := make([]models.SearchResultResponse, 0, len(spaces))
	for _, space := range spaces {
		maxAvailable, err := s.spaceRepo.MaxAvailableShelves(ctx, space.ID)
		if err != nil {
			s.logger.Error("Search: failed to get availability for space id=%d: %v", space.ID, err)
			return nil, fmt.Errorf("%w: Search - failed to get availability: %v", ErrInternal, err)
		}
		if maxAvailable < shelvesNeeded {
			continue
		}

		results = append(results, models.SearchResultResponse{
			Space:          *models.FromDomainSpace(space),
			ShelvesNeeded:  shelvesNeeded,
			EstimatedPrice: float64(shelvesNeeded) * space.PricePerDay,
		})
	}

	// Дешевые площадки первыми
	sort.Slice(results, func(i, j int) bool {
		return results[i].EstimatedPrice < results[j].EstimatedPrice
	})

	s.logger.Info("Search: %d of %d spaces fit %d shelves", len(results), len(spaces), shelvesNeeded)
	return &models.SearchResponse{
		ShelvesNeeded: shelvesNeeded,
		Results:       results,
	}, nil
}

// GetLayout возвращает раскладку площадки: стеллажи по позициям и
// занятость каждой полки
func (s *Service) GetLayout(ctx context.Context, spaceID int64) (*models.SpaceLayoutResponse, error) {
	s.logger.Info("GetLayout: fetching layout for space id=%d", spaceID)

	if _, err := s.spaceRepo.GetSpaceByID(ctx, spaceID); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("GetLayout: space id=%d not found", spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("GetLayout: repository error for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: GetLayout - repository error: %v", ErrInternal, err)
	}

	racks, err := s.spaceRepo.ListRacks(ctx, spaceID)
	if err != nil {
		s.logger.Error("GetLayout: failed to list racks for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: GetLayout - failed to list racks: %v", ErrInternal, err)
	}

	shelves, err := s.spaceRepo.ListShelves(ctx, spaceID)
	if err != nil {
		s.logger.Error("GetLayout: failed to list shelves for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: GetLayout - failed to list shelves: %v", ErrInternal, err)
	}

	shelvesByRack := make(map[int64][]models.ShelfResponse, len(racks))
	for _, shelf := range shelves {
		shelvesByRack[shelf.RackID] = append(shelvesByRack[shelf.RackID], models.ShelfResponse{
			ID:         shelf.ID,
			Position:   shelf.Position,
			IsOccupied: shelf.IsOccupied,
		})
	}

	layout := &models.SpaceLayoutResponse{
		SpaceID: spaceID,
		Racks:   make([]models.RackLayoutResponse, len(racks)),
	}
	for i, rack := range racks {
		rackShelves := shelvesByRack[rack.ID]
		if rackShelves == nil {
			rackShelves = []models.ShelfResponse{}
		}
		layout.Racks[i] = models.RackLayoutResponse{
			RackID:   rack.ID,
			Position: rack.Position,
			Shelves:  rackShelves,
		}
	}

	return layout, nil
}

// UpdateStatus переводит площадку в новый статус по правилам FSM
// Доступно только владельцу площадки
func (s *Service) UpdateStatus(ctx context.Context, spaceID int64, req *models.UpdateStatusRequest) (*models.SpaceResponse, error) {
	s.logger.Info("UpdateStatus: space id=%d -> %s by renter=%d", spaceID, req.Status, req.RenterID)

	space, err := s.spaceRepo.GetSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("UpdateStatus: space id=%d not found", spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("UpdateStatus: repository error for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if space.RenterID != req.RenterID {
		s.logger.Warn("UpdateStatus: access denied for renter=%d to space id=%d", req.RenterID, spaceID)
		return nil, ErrAccessDenied
	}

	target, err := models.ToDomainSpaceStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for space id=%d", req.Status, spaceID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if err := space.Transition(target); err != nil {
		s.logger.Warn("UpdateStatus: invalid transition for space id=%d: %v", spaceID, err)
		return nil, err
	}

	if err := s.spaceRepo.UpdateSpaceStatus(ctx, spaceID, target); err != nil {
		s.logger.Error("UpdateStatus: failed to update space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to update: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: space id=%d moved to %s", spaceID, target)
	return models.FromDomainSpace(space), nil
}

// Delete удаляет площадку вместе со стеллажами и полками
// Доступно только владельцу площадки
func (s *Service) Delete(ctx context.Context, spaceID int64, renterID int64) error {
	s.logger.Info("Delete: deleting space id=%d by renter=%d", spaceID, renterID)

	space, err := s.spaceRepo.GetSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("Delete: space id=%d not found", spaceID)
			return ErrSpaceNotFound
		}
		s.logger.Error("Delete: repository error for space id=%d: %v", spaceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if space.RenterID != renterID {
		s.logger.Warn("Delete: access denied for renter=%d to space id=%d", renterID, spaceID)
		return ErrAccessDenied
	}

	if err := s.spaceRepo.DeleteSpace(ctx, spaceID); err != nil {
		s.logger.Error("Delete: failed to delete space id=%d: %v", spaceID, err)
		return fmt.Errorf("%w: Delete - failed to delete: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted space id=%d", spaceID)
	return nil
}

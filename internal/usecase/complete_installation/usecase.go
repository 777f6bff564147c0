package complete_installation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	installationRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/installation"
)

// UseCase use case завершения монтажа: перевод заявки APPROVED ->
// COMPLETED и атомарная конверсия в живую площадку со стеллажами и
// полками. Заявка удаляется только после того, как композит полностью
// сохранен; при любой ошибке транзакция откатывается целиком.
type UseCase struct {
	installRepo InstallationRepository
	spaceRepo   SpaceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	installRepo InstallationRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		installRepo: installRepo,
		spaceRepo:   spaceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case завершения монтажа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteInstallation: request=%d, racks=%d, shelvesPerRack=%d",
		req.RequestID, req.NumRacks, req.NumShelvesPerRack)

	// 1. Валидация входных данных (до любых обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteInstallation: validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Space

	// 2. Конверсия выполняется по принципу все-или-ничего
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заявку с блокировкой строки
		request, err := uc.installRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, installationRepo.ErrRequestNotFound) {
				uc.logger.Warn("CompleteInstallation: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("CompleteInstallation: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		// 2.2. Проверяем переход APPROVED -> COMPLETED
		if err := request.Transition(domain.InstallationCompleted); err != nil {
			uc.logger.Warn("CompleteInstallation: invalid transition for request id=%d: %v", req.RequestID, err)
			return err
		}

		// 2.3. Создаем площадку, наследующую владельца, район и ставку
		space := &domain.Space{
			RenterID:              request.RenterID,
			Area:                  request.Area,
			EnvironmentConditions: request.EnvironmentConditions,
			Status:                domain.SpaceStatusApproved,
			PricePerDay:           request.PricePerDay,
			Description:           request.Description,
		}

		created, err := uc.spaceRepo.CreateSpace(txCtx, space)
		if err != nil {
			uc.logger.Error("CompleteInstallation: failed to create space: %v", err)
			return fmt.Errorf("%w: failed to create space: %v", ErrInternal, err)
		}

		// 2.4. Создаем стеллажи с позициями 0..n-1 и полки 0..m-1
		for position := 0; position < req.NumRacks; position++ {
			rack, err := uc.spaceRepo.CreateRack(txCtx, &domain.Rack{
				SpaceID:  created.ID,
				Position: position,
			})
			if err != nil {
				uc.logger.Error("CompleteInstallation: failed to create rack at position %d: %v", position, err)
				return fmt.Errorf("%w: failed to create rack: %v", ErrInternal, err)
			}

			if err := uc.spaceRepo.CreateShelves(txCtx, rack.ID, req.NumShelvesPerRack); err != nil {
				uc.logger.Error("CompleteInstallation: failed to create shelves for rack id=%d: %v", rack.ID, err)
				return fmt.Errorf("%w: failed to create shelves: %v", ErrInternal, err)
			}
		}

		// 2.5. Удаляем заявку: она не сосуществует со своей площадкой
		if err := uc.installRepo.Delete(txCtx, req.RequestID); err != nil {
			uc.logger.Error("CompleteInstallation: failed to delete request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to delete request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteInstallation: request id=%d converted to space id=%d", req.RequestID, result.ID)

	return &Response{
		SpaceID:           result.ID,
		RenterID:          result.RenterID,
		Area:              result.Area,
		Status:            string(result.Status),
		PricePerDay:       result.PricePerDay,
		NumRacks:          req.NumRacks,
		NumShelvesPerRack: req.NumShelvesPerRack,
		CreatedAt:         result.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	if req.NumRacks < 1 {
		return fmt.Errorf("%w: rack count must be at least 1, got %d", domain.ErrInvalidQuantity, req.NumRacks)
	}

	if req.NumShelvesPerRack < 1 {
		return fmt.Errorf("%w: shelves per rack must be at least 1, got %d", domain.ErrInvalidQuantity, req.NumShelvesPerRack)
	}

	return nil
}

package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// UseCase use case создания бронирования: подбор стеллажа и блока полок
// (best fit + проверка смежности), расчет цены и сохранение.
type UseCase struct {
	bookingRepo BookingRepository
	spaceRepo   SpaceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Подбор и занятие полок выполняются одной сериализуемой транзакцией с
// блокировкой строк полок: два конкурентных запроса на пересекающиеся
// блоки не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: space=%d, lessee=%d, period=%s..%s, shelves=%d",
		req.SpaceID, req.LesseeID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.NumShelves)

	// 1. Валидация входных данных (до любых обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	days := domain.TotalDays(req.StartDate, req.EndDate)

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Подбор и занятие полок в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем площадку и проверяем, что она принимает бронирования
		space, err := uc.spaceRepo.GetSpaceByID(txCtx, req.SpaceID)
		if err != nil {
			uc.logger.Warn("CreateBooking: space id=%d not found: %v", req.SpaceID, err)
			return ErrSpaceNotFound
		}
		if !space.IsBookable() {
			uc.logger.Warn("CreateBooking: space id=%d is not bookable, status=%s", space.ID, space.Status)
			return ErrSpaceNotAvailable
		}

		// 2.2. Читаем стеллажи и полки площадки; строки полок блокируются
		racks, err := uc.spaceRepo.ListRacks(txCtx, req.SpaceID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list racks: %v", err)
			return fmt.Errorf("%w: failed to list racks: %v", ErrInternal, err)
		}

		shelves, err := uc.spaceRepo.ListShelves(txCtx, req.SpaceID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list shelves: %v", err)
			return fmt.Errorf("%w: failed to list shelves: %v", ErrInternal, err)
		}

		// 2.3. Получаем бронирования, пересекающиеся с запрошенным периодом
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.SpaceID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		// 2.4. Считаем доступность стеллажей по датам и выбираем best fit
		conflicts := conflictingShelfIDs(overlapping)
		availabilities := rackAvailabilities(racks, shelves, conflicts)

		best, err := selectBestFitRack(availabilities, req.NumShelves)
		if err != nil {
			uc.logger.Warn("CreateBooking: no rack fits %d shelves in space id=%d", req.NumShelves, req.SpaceID)
			return err
		}

		// 2.5. Ищем первый непрерывный блок нужной длины внутри стеллажа
		shelfIDs, err := findContiguousRun(best.shelves, conflicts, req.NumShelves)
		if err != nil {
			uc.logger.Warn("CreateBooking: rack id=%d has %d free shelves but no contiguous block of %d",
				best.rack.ID, best.available, req.NumShelves)
			return err
		}

		uc.logger.Info("CreateBooking: selected rack id=%d (position=%d, available=%d), shelves=%v",
			best.rack.ID, best.rack.Position, best.available, shelfIDs)

		// 2.6. Считаем цену: полки x дни (включительно) x ставка площадки
		totalPrice, err := domain.CalculatePrice(req.NumShelves, days, space.PricePerDay)
		if err != nil {
			return err
		}

		// 2.7. Сохраняем бронирование и помечаем блок занятым
		booking := &domain.Booking{
			LesseeID:   req.LesseeID,
			SpaceID:    req.SpaceID,
			RackID:     best.rack.ID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			NumShelves: req.NumShelves,
			ShelfIDs:   shelfIDs,
			TotalPrice: totalPrice,
			Status:     domain.StatusBooked,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.spaceRepo.OccupyShelves(txCtx, created.ID, shelfIDs); err != nil {
			uc.logger.Error("CreateBooking: failed to occupy shelves: %v", err)
			return fmt.Errorf("%w: failed to occupy shelves: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f", result.ID, result.TotalPrice)

	return &Response{
		ID:         result.ID,
		LesseeID:   result.LesseeID,
		SpaceID:    result.SpaceID,
		RackID:     result.RackID,
		ShelfIDs:   result.ShelfIDs,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		NumShelves: result.NumShelves,
		TotalDays:  days,
		TotalPrice: result.TotalPrice,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
	}, nil
}

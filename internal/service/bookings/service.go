package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StorageService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo BookingRepository
	spaceRepo   SpaceRepository
	txManager   TransactionManager
	clock       Clock
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	txManager TransactionManager,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		txManager:   txManager,
		clock:       clock,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.LesseeID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for lessee=%d, status=%v", req.LesseeID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for lessee=%d", *req.Status, req.LesseeID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByLessee(ctx, req.LesseeID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for lessee=%d: %v", req.LesseeID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for lessee=%d", len(bookings), req.LesseeID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает его полки.
// Статус сначала приводится к текущей дате: бронирование, чей срок уже
// истек, отменить нельзя, даже если строка всё ещё хранит BOOKED.
// Пользователь может отменить только своё бронирование.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if booking.LesseeID != userID {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}

		// 3. Приводим статус к текущей дате и проверяем переход
		effective := booking.RefreshedStatus(s.clock.Now())
		booking.Status = effective

		if err := booking.Transition(domain.StatusCancelled); err != nil {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, effective)
			return err
		}

		// 4. Сохраняем CANCELLED и освобождаем полки
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			s.logger.Error("Cancel: failed to update status for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - failed to update status: %v", ErrInternal, err)
		}

		if err := s.spaceRepo.ReleaseShelves(txCtx, bookingID); err != nil {
			s.logger.Error("Cancel: failed to release shelves for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - failed to release shelves: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// RefreshStatuses пересчитывает статусы всех незавершенных бронирований
// по текущей дате: BOOKED -> ACTIVE в день начала, BOOKED/ACTIVE -> PAST
// после дня окончания. Полки истекших бронирований освобождаются.
// Повторный вызов в тот же день ничего не меняет.
func (s *Service) RefreshStatuses(ctx context.Context) (*models.RefreshResult, error) {
	asOf := s.clock.Now()
	s.logger.Info("RefreshStatuses: refreshing bookings as of %s", asOf.Format(domain.DateFormat))

	result := &models.RefreshResult{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Берем все BOOKED/ACTIVE бронирования с блокировкой строк
		holding, err := s.bookingRepo.ListHolding(txCtx)
		if err != nil {
			s.logger.Error("RefreshStatuses: failed to list holding bookings: %v", err)
			return fmt.Errorf("%w: RefreshStatuses - failed to list bookings: %v", ErrInternal, err)
		}
		result.Checked = len(holding)

		for _, booking := range holding {
			next := booking.RefreshedStatus(asOf)
			if next == booking.Status {
				continue
			}

			// 2. Сохраняем новый статус
			if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, next); err != nil {
				s.logger.Error("RefreshStatuses: failed to update booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: RefreshStatuses - failed to update status: %v", ErrInternal, err)
			}

			// 3. Истекшие бронирования освобождают свои полки
			switch next {
			case domain.StatusActive:
				result.Activated++
			case domain.StatusPast:
				result.Expired++
				if err := s.spaceRepo.ReleaseShelves(txCtx, booking.ID); err != nil {
					s.logger.Error("RefreshStatuses: failed to release shelves for booking id=%d: %v", booking.ID, err)
					return fmt.Errorf("%w: RefreshStatuses - failed to release shelves: %v", ErrInternal, err)
				}
			}

			s.logger.Info("RefreshStatuses: booking id=%d moved %s -> %s", booking.ID, booking.Status, next)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RefreshStatuses: checked=%d, activated=%d, expired=%d",
		result.Checked, result.Activated, result.Expired)
	return result, nil
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/api/middleware"
	"github.com/m04kA/SMC-StorageService/internal/domain"
	createBookingUC "github.com/m04kA/SMC-StorageService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgSpaceNotFound      = "площадка не найдена"
	msgSpaceNotAvailable  = "площадка не принимает бронирования"
	msgNoFit              = "нет стеллажа с достаточным числом свободных полок"
	msgNoContiguousBlock  = "свободные полки есть, но непрерывного блока нужной длины нет"
	msgConflict           = "конфликт конкурентных бронирований, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lesseeID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель usecase
	ucReq, err := req.ToUseCaseRequest(lesseeID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBookingUC.ErrInvalidInput),
			errors.Is(err, domain.ErrInvalidQuantity):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBookingUC.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createBookingUC.ErrSpaceNotAvailable):
			h.logger.Warn("POST /bookings - Space not available: space_id=%d", req.SpaceID)
			handlers.RespondConflict(w, msgSpaceNotAvailable)

		case errors.Is(err, createBookingUC.ErrNoFit):
			h.logger.Warn("POST /bookings - No rack fits: space_id=%d, shelves=%d", req.SpaceID, req.NumShelves)
			handlers.RespondConflict(w, msgNoFit)

		case errors.Is(err, createBookingUC.ErrNoContiguousBlock):
			h.logger.Warn("POST /bookings - No contiguous block: space_id=%d, shelves=%d", req.SpaceID, req.NumShelves)
			handlers.RespondConflict(w, msgNoContiguousBlock)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /bookings - Serialization conflict: space_id=%d", req.SpaceID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: space_id=%d, error=%v", req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, lessee_id=%d", resp.ID, lesseeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

package complete_installation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/domain"
	completeInstallationUC "github.com/m04kA/SMC-StorageService/internal/usecase/complete_installation"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры монтажа"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "завершить можно только одобренную заявку"
)

type Handler struct {
	useCase CompleteInstallationUseCase
	logger  Logger
}

func NewHandler(useCase CompleteInstallationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CompleteInstallationRequest HTTP request model.
// Числа подтверждаются монтажной бригадой и могут отличаться от заявки.
type CompleteInstallationRequest struct {
	NumRacks          int `json:"numRacks"`
	NumShelvesPerRack int `json:"numShelvesPerRack"`
}

// Handle POST /api/v1/installation-requests/{requestId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /installation-requests/{id}/complete - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req CompleteInstallationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /installation-requests/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &completeInstallationUC.Request{
		RequestID:         requestID,
		NumRacks:          req.NumRacks,
		NumShelvesPerRack: req.NumShelvesPerRack,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeInstallationUC.ErrInvalidInput),
			errors.Is(err, domain.ErrInvalidQuantity):
			h.logger.Warn("POST /installation-requests/{id}/complete - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, completeInstallationUC.ErrRequestNotFound):
			h.logger.Warn("POST /installation-requests/{id}/complete - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidInstallationTransition):
			h.logger.Warn("POST /installation-requests/{id}/complete - Invalid transition: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /installation-requests/{id}/complete - Failed to complete: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /installation-requests/{id}/complete - Converted to space: request_id=%d, space_id=%d",
		requestID, resp.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

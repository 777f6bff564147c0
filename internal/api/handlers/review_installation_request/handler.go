package review_installation_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/internal/service/installations"
	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "заявка уже рассмотрена"
)

type Handler struct {
	service InstallationService
	logger  Logger
}

func NewHandler(service InstallationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ReviewRequestRequest HTTP request model
type ReviewRequestRequest struct {
	Approve bool `json:"approve"`
}

// Handle PATCH /api/v1/installation-requests/{requestId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /installation-requests/{id}/review - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req ReviewRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /installation-requests/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Review(r.Context(), requestID, &models.ReviewRequestRequest{Approve: req.Approve})
	if err != nil {
		switch {
		case errors.Is(err, installations.ErrRequestNotFound):
			h.logger.Warn("PATCH /installation-requests/{id}/review - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidInstallationTransition):
			h.logger.Warn("PATCH /installation-requests/{id}/review - Invalid transition: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /installation-requests/{id}/review - Failed to review: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /installation-requests/{id}/review - Reviewed: request_id=%d, status=%s",
		requestID, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

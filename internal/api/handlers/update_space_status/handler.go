package update_space_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/api/middleware"
	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус площадки"
	msgInvalidTransition  = "переход в этот статус запрещен"
	msgNotFound           = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Handle PATCH /api/v1/spaces/{spaceId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	renterID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /spaces/{id}/status - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /spaces/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.UpdateStatus(r.Context(), spaceID, &models.UpdateStatusRequest{
		RenterID: renterID,
		Status:   req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrSpaceNotFound):
			h.logger.Warn("PATCH /spaces/{id}/status - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrAccessDenied):
			h.logger.Warn("PATCH /spaces/{id}/status - Access denied: space_id=%d, renter_id=%d", spaceID, renterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, spaces.ErrInvalidStatus):
			h.logger.Warn("PATCH /spaces/{id}/status - Invalid status: space_id=%d, status=%s", spaceID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, domain.ErrInvalidSpaceTransition):
			h.logger.Warn("PATCH /spaces/{id}/status - Invalid transition: space_id=%d, error=%v", spaceID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /spaces/{id}/status - Failed to update status: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /spaces/{id}/status - Status updated: space_id=%d, status=%s", spaceID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, space)
}

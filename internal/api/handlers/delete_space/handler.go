package delete_space

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/api/middleware"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces"
)

const (
	msgInvalidSpaceID = "некорректный ID площадки"
	msgNotFound       = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/spaces/{spaceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	renterID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	vars := mux.Vars(r)
	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	if err := h.service.Delete(r.Context(), spaceID, renterID); err != nil {
		switch {
		case errors.Is(err, spaces.ErrSpaceNotFound):
			h.logger.Warn("DELETE /spaces/{id} - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, spaces.ErrAccessDenied):
			h.logger.Warn("DELETE /spaces/{id} - Access denied: space_id=%d, renter_id=%d", spaceID, renterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /spaces/{id} - Failed to delete space: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /spaces/{id} - Space deleted: space_id=%d, renter_id=%d", spaceID, renterID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package refresh_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/refresh
// Пересчет статусов по текущей дате. Вызывается планировщиком;
// повторный вызов в тот же день безопасен.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RefreshStatuses(r.Context())
	if err != nil {
		h.logger.Error("POST /bookings/refresh - Failed to refresh statuses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/refresh - Refreshed: checked=%d, activated=%d, expired=%d",
		result.Checked, result.Activated, result.Expired)
	handlers.RespondJSON(w, http.StatusOK, result)
}

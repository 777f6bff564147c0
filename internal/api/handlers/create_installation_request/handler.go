package create_installation_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/api/middleware"
	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/internal/service/installations"
	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры заявки"
	msgUnknownArea        = "неизвестный район"
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

// CreateRequestRequest HTTP request model
type CreateRequestRequest struct {
	Area                  string `json:"area"`
	EnvironmentConditions string `json:"environmentConditions"`
	NumRacks              int    `json:"numRacks"`
	NumShelvesPerRack     int    `json:"numShelvesPerRack"`
	Description           string `json:"description,omitempty"`
}

// Handle POST /api/v1/installation-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	renterID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /installation-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &models.CreateRequestRequest{
		RenterID:              renterID,
		Area:                  req.Area,
		EnvironmentConditions: req.EnvironmentConditions,
		NumRacks:              req.NumRacks,
		NumShelvesPerRack:     req.NumShelvesPerRack,
		Description:           req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, installations.ErrUnknownArea):
			h.logger.Warn("POST /installation-requests - Unknown area: area=%s", req.Area)
			handlers.RespondBadRequest(w, msgUnknownArea)

		case errors.Is(err, installations.ErrInvalidInput),
			errors.Is(err, domain.ErrInvalidQuantity):
			h.logger.Warn("POST /installation-requests - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /installation-requests - Failed to create request: renter_id=%d, error=%v",
				renterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /installation-requests - Request created: request_id=%d, renter_id=%d", resp.ID, renterID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// HandleList GET /api/v1/installation-requests - заявки текущего владельца
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	renterID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	resp, err := h.service.ListByRenter(r.Context(), &renterID)
	if err != nil {
		h.logger.Error("GET /installation-requests - Failed to list requests: renter_id=%d, error=%v", renterID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

package search_spaces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces"
	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

const (
	msgInvalidDimensions = "некорректные габариты предмета"
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

// Handle GET /api/v1/spaces/search?length=120&width=40&height=30&area=TPY
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	length, errL := strconv.ParseFloat(query.Get("length"), 64)
	width, errW := strconv.ParseFloat(query.Get("width"), 64)
	height, errH := strconv.ParseFloat(query.Get("height"), 64)
	if errL != nil || errW != nil || errH != nil {
		h.logger.Warn("GET /spaces/search - Invalid dimensions: length=%q, width=%q, height=%q",
			query.Get("length"), query.Get("width"), query.Get("height"))
		handlers.RespondBadRequest(w, msgInvalidDimensions)
		return
	}

	req := &models.SearchSpacesRequest{
		Length: length,
		Width:  width,
		Height: height,
	}
	if area := query.Get("area"); area != "" {
		req.Area = &area
	}

	resp, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, spaces.ErrInvalidInput):
			h.logger.Warn("GET /spaces/search - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDimensions)

		default:
			h.logger.Error("GET /spaces/search - Failed to search spaces: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

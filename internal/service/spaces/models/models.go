package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid space status")
)

// Request модели

// SearchSpacesRequest поиск площадок под предмет заданных габаритов (см)
type SearchSpacesRequest struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   *string `json:"area,omitempty"` // Фильтр по району (опционально)
}

// UpdateStatusRequest запрос на смену статуса площадки
type UpdateStatusRequest struct {
	RenterID int64  `json:"renterId"`
	Status   string `json:"status"`
}

// Response модели

// SpaceResponse ответ с данными площадки
type SpaceResponse struct {
	ID                    int64   `json:"id"`
	RenterID              int64   `json:"renterId"`
	Area                  string  `json:"area"`
	EnvironmentConditions string  `json:"environmentConditions"`
	Status                string  `json:"status"`
	PricePerDay           float64 `json:"pricePerDay"`
	Description           string  `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpaceListResponse ответ со списком площадок
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// SearchResultResponse площадка, подходящая под запрошенные габариты
type SearchResultResponse struct {
	Space          SpaceResponse `json:"space"`
	ShelvesNeeded  int           `json:"shelvesNeeded"`  // Полок под предмет
	EstimatedPrice float64       `json:"estimatedPrice"` // Цена за день хранения
}

// SearchResponse ответ на поиск площадок
type SearchResponse struct {
	ShelvesNeeded int                    `json:"shelvesNeeded"`
	Results       []SearchResultResponse `json:"results"`
}

// ShelfResponse одна полка в раскладке стеллажа
type ShelfResponse struct {
	ID         int64 `json:"id"`
	Position   int   `json:"position"`
	IsOccupied bool  `json:"isOccupied"`
}

// RackLayoutResponse раскладка одного стеллажа
type RackLayoutResponse struct {
	RackID   int64           `json:"rackId"`
	Position int             `json:"position"`
	Shelves  []ShelfResponse `json:"shelves"`
}

// SpaceLayoutResponse полная раскладка площадки по стеллажам
type SpaceLayoutResponse struct {
	SpaceID int64                `json:"spaceId"`
	Racks   []RackLayoutResponse `json:"racks"`
}

// Методы конвертации

// FromDomainSpace конвертирует domain модель в DTO
func FromDomainSpace(s *domain.Space) *SpaceResponse {
	if s == nil {
		return nil
	}

	return &SpaceResponse{
		ID:                    s.ID,
		RenterID:              s.RenterID,
		Area:                  s.Area,
		EnvironmentConditions: string(s.EnvironmentConditions),
		Status:                string(s.Status),
		PricePerDay:           s.PricePerDay,
		Description:           s.Description,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// FromDomainSpaceList конвертирует список domain моделей в DTO
func FromDomainSpaceList(spaces []*domain.Space) *SpaceListResponse {
	if spaces == nil {
		return &SpaceListResponse{Spaces: []SpaceResponse{}}
	}

	resp := &SpaceListResponse{
		Spaces: make([]SpaceResponse, len(spaces)),
	}

	for i, space := range spaces {
		if spaceResp := FromDomainSpace(space); spaceResp != nil {
			resp.Spaces[i] = *spaceResp
		}
	}

	return resp
}

// ToDomainSpaceStatus конвертирует строку в domain.SpaceStatus с валидацией
func ToDomainSpaceStatus(status string) (domain.SpaceStatus, error) {
	s := domain.SpaceStatus(status)

	validStatuses := []domain.SpaceStatus{
		domain.SpaceStatusPending,
		domain.SpaceStatusApproved,
		domain.SpaceStatusRejected,
		domain.SpaceStatusOnHold,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

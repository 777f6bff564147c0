package models

import (
	"time"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// Request модели

// CreateRequestRequest заявка владельца на монтаж стеллажей
type CreateRequestRequest struct {
	RenterID              int64  `json:"renterId"`
	Area                  string `json:"area"`
	EnvironmentConditions string `json:"environmentConditions"`
	NumRacks              int    `json:"numRacks"`
	NumShelvesPerRack     int    `json:"numShelvesPerRack"`
	Description           string `json:"description,omitempty"`
}

// ReviewRequestRequest решение модератора по заявке
type ReviewRequestRequest struct {
	Approve bool `json:"approve"`
}

// Response модели

// InstallationRequestResponse ответ с данными заявки
type InstallationRequestResponse struct {
	ID                    int64   `json:"id"`
	RenterID              int64   `json:"renterId"`
	Area                  string  `json:"area"`
	AreaName              string  `json:"areaName,omitempty"`
	EnvironmentConditions string  `json:"environmentConditions"`
	Status                string  `json:"status"`
	NumRacks              int     `json:"numRacks"`
	NumShelvesPerRack     int     `json:"numShelvesPerRack"`
	TotalShelves          int     `json:"totalShelves"`
	PricePerDay           float64 `json:"pricePerDay"`
	Description           string  `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InstallationRequestListResponse ответ со списком заявок
type InstallationRequestListResponse struct {
	Requests []InstallationRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.InstallationRequest) *InstallationRequestResponse {
	if r == nil {
		return nil
	}

	resp := &InstallationRequestResponse{
		ID:                    r.ID,
		RenterID:              r.RenterID,
		Area:                  r.Area,
		EnvironmentConditions: string(r.EnvironmentConditions),
		Status:                string(r.Status),
		NumRacks:              r.NumRacks,
		NumShelvesPerRack:     r.NumShelvesPerRack,
		TotalShelves:          r.TotalShelves(),
		PricePerDay:           r.PricePerDay,
		Description:           r.Description,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}

	if location, ok := domain.LocationByArea(r.Area); ok {
		resp.AreaName = location.Name
	}

	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.InstallationRequest) *InstallationRequestListResponse {
	if requests == nil {
		return &InstallationRequestListResponse{Requests: []InstallationRequestResponse{}}
	}

	resp := &InstallationRequestListResponse{
		Requests: make([]InstallationRequestResponse, len(requests)),
	}

	for i, request := range requests {
		if requestResp := FromDomainRequest(request); requestResp != nil {
			resp.Requests[i] = *requestResp
		}
	}

	return resp
}

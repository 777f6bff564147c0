package create_booking

import (
	"fmt"

	createBookingUC "github.com/m04kA/SMC-StorageService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StorageService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SpaceID    int64            `json:"spaceId"`
	StartDate  types.DateString `json:"startDate"` // "2025-10-15"
	EndDate    types.DateString `json:"endDate"`   // "2025-10-20"
	NumShelves int              `json:"numShelves"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(lesseeID int64) (*createBookingUC.Request, error) {
	startDate, err := r.StartDate.Time()
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	endDate, err := r.EndDate.Time()
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &createBookingUC.Request{
		SpaceID:    r.SpaceID,
		LesseeID:   lesseeID,
		StartDate:  startDate,
		EndDate:    endDate,
		NumShelves: r.NumShelves,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID         int64   `json:"id"`
	LesseeID   int64   `json:"lesseeId"`
	SpaceID    int64   `json:"spaceId"`
	RackID     int64   `json:"rackId"`
	ShelfIDs   []int64 `json:"shelfIds"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	NumShelves int     `json:"numShelves"`
	TotalDays  int     `json:"totalDays"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *createBookingUC.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:         resp.ID,
		LesseeID:   resp.LesseeID,
		SpaceID:    resp.SpaceID,
		RackID:     resp.RackID,
		ShelfIDs:   resp.ShelfIDs,
		StartDate:  types.NewDateString(resp.StartDate).String(),
		EndDate:    types.NewDateString(resp.EndDate).String(),
		NumShelves: resp.NumShelves,
		TotalDays:  resp.TotalDays,
		TotalPrice: resp.TotalPrice,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

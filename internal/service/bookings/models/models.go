package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	LesseeID int64   `json:"lesseeId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	LesseeID   int64   `json:"lesseeId"`
	SpaceID    int64   `json:"spaceId"`
	RackID     int64   `json:"rackId"`
	ShelfIDs   []int64 `json:"shelfIds"`
	StartDate  string  `json:"startDate"` // "2025-10-15"
	EndDate    string  `json:"endDate"`   // "2025-10-20"
	NumShelves int     `json:"numShelves"`
	TotalDays  int     `json:"totalDays"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RefreshResult результат пересчета статусов по текущей дате
type RefreshResult struct {
	Checked   int `json:"checked"`   // Сколько бронирований проверено
	Activated int `json:"activated"` // BOOKED -> ACTIVE
	Expired   int `json:"expired"`   // BOOKED/ACTIVE -> PAST
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		LesseeID:   b.LesseeID,
		SpaceID:    b.SpaceID,
		RackID:     b.RackID,
		ShelfIDs:   b.ShelfIDs,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		NumShelves: b.NumShelves,
		TotalDays:  b.TotalDays(),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusBooked,
		domain.StatusActive,
		domain.StatusPast,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

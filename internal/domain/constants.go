package domain

// Physical dimensions (in centimeters) of a standard shelf unit.
// Every shelf in the system has the same footprint; item fit checks
// and shelf-count requirements are derived from these.
const (
	ShelfLength = 50
	ShelfWidth  = 46
	ShelfHeight = 42
)

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// HoldingStatuses список статусов бронирований, удерживающих полки
// Используется при подсчёте доступности и при проверке пересечений дат
var HoldingStatuses = []BookingStatus{
	StatusBooked,
	StatusActive,
}

// TerminalBookingStatuses список терминальных статусов бронирований
var TerminalBookingStatuses = []BookingStatus{
	StatusPast,
	StatusCancelled,
}

package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSpaceNotFound возвращается, когда площадка не найдена
	ErrSpaceNotFound = errors.New("create_booking: space not found")

	// ErrSpaceNotAvailable возвращается, когда площадка не принимает бронирования
	ErrSpaceNotAvailable = errors.New("create_booking: space is not available for booking")

	// ErrNoFit возвращается, когда ни один стеллаж не располагает нужным
	// числом свободных полок на запрошенные даты
	ErrNoFit = errors.New("create_booking: no rack can fit the requested shelf count")

	// ErrNoContiguousBlock возвращается, когда свободных полок достаточно,
	// но непрерывного блока нужной длины нет (фрагментация)
	ErrNoContiguousBlock = errors.New("create_booking: no contiguous shelf block available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

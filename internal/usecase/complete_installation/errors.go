package complete_installation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_installation: invalid input data")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("complete_installation: installation request not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_installation: internal error")
)

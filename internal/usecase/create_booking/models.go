package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	SpaceID    int64     // ID площадки
	LesseeID   int64     // ID арендатора
	StartDate  time.Time // Дата начала (без времени)
	EndDate    time.Time // Дата окончания, включительно
	NumShelves int       // Требуемое число смежных полок
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	LesseeID   int64     // ID арендатора
	SpaceID    int64     // ID площадки
	RackID     int64     // ID выбранного стеллажа
	ShelfIDs   []int64   // Выделенный блок полок в порядке позиций
	StartDate  time.Time // Дата начала
	EndDate    time.Time // Дата окончания
	NumShelves int       // Число полок
	TotalDays  int       // Длительность в днях (границы включительно)
	TotalPrice float64   // Итоговая цена
	Status     string    // Статус бронирования

	CreatedAt time.Time // Время создания
}

package complete_installation

import "time"

// Request модель запроса на завершение монтажа
type Request struct {
	RequestID         int64 // ID заявки на монтаж
	NumRacks          int   // Подтвержденное число стеллажей
	NumShelvesPerRack int   // Подтвержденное число полок на стеллаж
}

// Response модель ответа с созданной площадкой
type Response struct {
	SpaceID           int64   // ID созданной площадки
	RenterID          int64   // ID владельца
	Area              string  // Код района
	Status            string  // Статус площадки (APPROVED)
	PricePerDay       float64 // Ставка за полку в день
	NumRacks          int     // Число созданных стеллажей
	NumShelvesPerRack int     // Число полок на стеллаж

	CreatedAt time.Time // Время создания площадки
}

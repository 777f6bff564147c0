package create_booking

import (
	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// rackAvailability доступность одного стеллажа на запрошенный период
type rackAvailability struct {
	rack      domain.Rack
	shelves   []domain.Shelf // все полки стеллажа в порядке позиций
	available int            // число свободных на период полок
}

// conflictingShelfIDs собирает множество полок, удерживаемых
// бронированиями, пересекающимися с запрошенным периодом.
// Доступность считается по датам, а не по текущему флагу занятости:
// полка, занятая непересекающимся бронированием, доступна.
func conflictingShelfIDs(bookings []*domain.Booking) map[int64]struct{} {
	conflicts := make(map[int64]struct{})
	for _, booking := range bookings {
		if !booking.Status.IsHolding() {
			continue
		}
		for _, shelfID := range booking.ShelfIDs {
			conflicts[shelfID] = struct{}{}
		}
	}
	return conflicts
}

// rackAvailabilities группирует полки по стеллажам и считает доступность
// каждого стеллажа. Порядок стеллажей (по позиции) сохраняется.
func rackAvailabilities(racks []domain.Rack, shelves []domain.Shelf, conflicts map[int64]struct{}) []rackAvailability {
	byRack := make(map[int64][]domain.Shelf, len(racks))
	for _, shelf := range shelves {
		byRack[shelf.RackID] = append(byRack[shelf.RackID], shelf)
	}

	result := make([]rackAvailability, 0, len(racks))
	for _, rack := range racks {
		avail := rackAvailability{rack: rack, shelves: byRack[rack.ID]}
		for _, shelf := range avail.shelves {
			if _, taken := conflicts[shelf.ID]; !taken {
				avail.available++
			}
		}
		result = append(result, avail)
	}
	return result
}

// selectBestFitRack выбирает стеллаж по принципу best fit: из стеллажей
// с достаточным числом свободных полок берется тот, где свободных полок
// МЕНЬШЕ всего — так заполнение уплотняется и крупные свободные блоки
// сохраняются для крупных запросов. При равенстве побеждает стеллаж с
// меньшей позицией.
func selectBestFitRack(availabilities []rackAvailability, required int) (rackAvailability, error) {
	var best rackAvailability
	found := false

	for _, candidate := range availabilities {
		if candidate.available < required {
			continue
		}
		if !found || candidate.available < best.available {
			best = candidate
			found = true
		}
	}

	if !found {
		return rackAvailability{}, ErrNoFit
	}
	return best, nil
}

// findContiguousRun сканирует полки стеллажа в порядке возрастания
// позиций и возвращает первый непрерывный блок из required свободных
// полок. Свободных полок может хватать суммарно, но непрерывного блока
// может не быть — тогда возвращается ErrNoContiguousBlock.
func findContiguousRun(shelves []domain.Shelf, conflicts map[int64]struct{}, required int) ([]int64, error) {
	run := make([]int64, 0, required)
	prevPosition := 0

	for _, shelf := range shelves {
		_, taken := conflicts[shelf.ID]
		if taken {
			run = run[:0]
			continue
		}

		// Разрыв в позициях разрывает блок
		if len(run) > 0 && shelf.Position != prevPosition+1 {
			run = run[:0]
		}

		run = append(run, shelf.ID)
		prevPosition = shelf.Position

		if len(run) == required {
			return run, nil
		}
	}

	return nil, ErrNoContiguousBlock
}

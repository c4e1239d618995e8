package domain

import "time"

// Venue площадка (кафе, коворкинг и т.п.)
type Venue struct {
	ID            int64
	Name          string
	Timezone      string // IANA, например "Europe/Moscow"
	HoursSource   HoursSource
	GooglePlaceID *string
	ManagerIDs    []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsManager проверяет, что пользователь управляет площадкой
func (v *Venue) IsManager(userID int64) bool {
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Table стол площадки
// SeatCount используется как вместимость, если у стола нет отдельных мест
type Table struct {
	ID        int64
	VenueID   int64
	Name      string
	SeatCount int
	IsActive  bool
	Seats     []Seat
}

// Seat отдельное место за столом
type Seat struct {
	ID       int64
	TableID  int64
	Label    string
	IsActive bool
}

// Capacity вместимость стола
func (t *Table) Capacity() int {
	if len(t.Seats) == 0 {
		return t.SeatCount
	}
	active := 0
	for _, s := range t.Seats {
		if s.IsActive {
			active++
		}
	}
	return active
}

// SeatIDs идентификаторы всех мест стола
func (t *Table) SeatIDs() []int64 {
	ids := make([]int64, 0, len(t.Seats))
	for _, s := range t.Seats {
		ids = append(ids, s.ID)
	}
	return ids
}

// Capacity вместимость площадки: сумма по активным столам
func Capacity(tables []Table) int {
	total := 0
	for i := range tables {
		if !tables[i].IsActive {
			continue
		}
		total += tables[i].Capacity()
	}
	return total
}

// FindSeat ищет место среди столов площадки
func FindSeat(tables []Table, seatID int64) (*Table, *Seat, bool) {
	for i := range tables {
		for j := range tables[i].Seats {
			if tables[i].Seats[j].ID == seatID {
				return &tables[i], &tables[i].Seats[j], true
			}
		}
	}
	return nil, nil, false
}

// FindTable ищет стол площадки
func FindTable(tables []Table, tableID int64) (*Table, bool) {
	for i := range tables {
		if tables[i].ID == tableID {
			return &tables[i], true
		}
	}
	return nil, false
}

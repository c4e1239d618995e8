package domain

import "time"

// OpenStatusKind состояние площадки в момент времени
type OpenStatusKind string

const (
	OpenNow     OpenStatusKind = "OPEN_NOW"
	ClosedNow   OpenStatusKind = "CLOSED_NOW"
	OpensLater  OpenStatusKind = "OPENS_LATER"
	ClosedToday OpenStatusKind = "CLOSED_TODAY"
)

// OpenStatus результат вычисления для площадки и момента, не хранится
type OpenStatus struct {
	IsOpen            bool           `json:"isOpen"`
	Status            OpenStatusKind `json:"status"`
	TodayLabel        string         `json:"todayLabel"`
	TodayHoursText    string         `json:"todayHoursText"`
	NextOpenAt        *time.Time     `json:"nextOpenAt,omitempty"`
	DiagnosticMessage *string        `json:"diagnosticMessage,omitempty"`
}

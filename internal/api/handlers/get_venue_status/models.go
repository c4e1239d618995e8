package get_venue_status

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getVenueStatus "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_venue_status"
)

// VenueStatusResponse HTTP response model
type VenueStatusResponse struct {
	VenueID         int64                   `json:"venueId"`
	Timezone        string                  `json:"timezone"`
	Capacity        int                     `json:"capacity"`
	WeeklyHours     []domain.WeeklyHoursRow `json:"weeklyHours"`
	OpenStatus      domain.OpenStatus       `json:"openStatus"`
	Availability    string                  `json:"availability"`
	State           string                  `json:"state"`
	NextAvailableAt *string                 `json:"nextAvailableAt,omitempty"`
	CalculatedAt    string                  `json:"calculatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getVenueStatus.Response) *VenueStatusResponse {
	weeklyHours := resp.WeeklyHours
	if weeklyHours == nil {
		weeklyHours = []domain.WeeklyHoursRow{}
	}

	out := &VenueStatusResponse{
		VenueID:      resp.VenueID,
		Timezone:     resp.Timezone,
		Capacity:     resp.Capacity,
		WeeklyHours:  weeklyHours,
		OpenStatus:   resp.OpenStatus,
		Availability: resp.Availability,
		State:        string(resp.State),
		CalculatedAt: resp.CalculatedAt.UTC().Format(time.RFC3339),
	}

	if resp.NextAvailableAt != nil {
		next := resp.NextAvailableAt.UTC().Format(time.RFC3339)
		out.NextAvailableAt = &next
	}

	return out
}

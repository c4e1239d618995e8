package sync_venue_hours

import "github.com/m04kA/SMC-VenueBookingService/internal/service/hours"

// SyncResponse HTTP response model
type SyncResponse struct {
	VenueID     int64 `json:"venueId"`
	UpdatedDays []int `json:"updatedDays"`
	SkippedDays []int `json:"skippedDays"`
}

// FromServiceResult конвертирует результат синхронизации в HTTP response
func FromServiceResult(result *hours.SyncResult) *SyncResponse {
	resp := &SyncResponse{
		VenueID:     result.VenueID,
		UpdatedDays: result.UpdatedDays,
		SkippedDays: result.SkippedDays,
	}
	if resp.UpdatedDays == nil {
		resp.UpdatedDays = []int{}
	}
	if resp.SkippedDays == nil {
		resp.SkippedDays = []int{}
	}
	return resp
}

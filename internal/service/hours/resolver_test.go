package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func row(day int, openAt, closeAt string, source domain.HoursRowSource) domain.WeeklyHoursRow {
	o, c := types.TimeString(openAt), types.TimeString(closeAt)
	return domain.WeeklyHoursRow{DayOfWeek: day, OpenTime: &o, CloseTime: &c, Source: source}
}

func days(rows []domain.WeeklyHoursRow) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.DayOfWeek)
	}
	return out
}

func mixedRows() []domain.WeeklyHoursRow {
	return []domain.WeeklyHoursRow{
		row(3, "10:00", "18:00", domain.HoursRowGoogle),
		row(1, "08:00", "12:00", domain.HoursRowManual),
		row(1, "09:00", "17:00", domain.HoursRowGoogle),
		row(2, "09:00", "17:00", domain.HoursRowLegacy),
		row(5, "11:00", "15:00", domain.HoursRowManual),
	}
}

func TestGetEffectiveVenueHours_Manual(t *testing.T) {
	got := GetEffectiveVenueHours(mixedRows(), domain.HoursSourceManual)

	assert.Equal(t, []int{1, 5}, days(got))
	for _, r := range got {
		assert.Equal(t, domain.HoursRowManual, r.Source)
	}
	assert.Equal(t, "08:00", got[0].OpenTime.String())
}

func TestGetEffectiveVenueHours_GoogleIncludesLegacy(t *testing.T) {
	for _, source := range []domain.HoursSource{domain.HoursSourceGoogle, domain.HoursSourceUnset} {
		got := GetEffectiveVenueHours(mixedRows(), source)

		assert.Equal(t, []int{1, 2, 3}, days(got), "source=%q", source)
		for _, r := range got {
			assert.True(t, r.Source.IsGoogle())
		}
		assert.Equal(t, "09:00", got[0].OpenTime.String(), "google row for monday, never the manual one")
	}
}

func TestGetEffectiveVenueHours_NoCrossSourceFallback(t *testing.T) {
	// В режиме manual google-день не подставляется, даже если ручной строки на этот день нет
	rows := []domain.WeeklyHoursRow{
		row(1, "08:00", "12:00", domain.HoursRowManual),
		row(2, "09:00", "17:00", domain.HoursRowGoogle),
	}

	got := GetEffectiveVenueHours(rows, domain.HoursSourceManual)
	assert.Equal(t, []int{1}, days(got))
}

func TestGetEffectiveVenueHours_Empty(t *testing.T) {
	got := GetEffectiveVenueHours(nil, domain.HoursSourceManual)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetEffectiveVenueHours_FirstRowPerDayWins(t *testing.T) {
	rows := []domain.WeeklyHoursRow{
		row(4, "09:00", "17:00", domain.HoursRowGoogle),
		row(4, "10:00", "20:00", domain.HoursRowLegacy),
		row(9, "10:00", "20:00", domain.HoursRowGoogle),
	}

	got := GetEffectiveVenueHours(rows, domain.HoursSourceGoogle)
	require.Len(t, got, 1)
	assert.Equal(t, "09:00", got[0].OpenTime.String())
}

func TestGetEffectiveVenueHours_GoogleRowReplacesLegacy(t *testing.T) {
	rows := []domain.WeeklyHoursRow{
		row(1, "09:00", "17:00", domain.HoursRowLegacy),
		row(1, "10:00", "18:00", domain.HoursRowGoogle),
		row(2, "08:00", "16:00", domain.HoursRowLegacy),
	}

	for _, source := range []domain.HoursSource{domain.HoursSourceGoogle, domain.HoursSourceUnset} {
		got := GetEffectiveVenueHours(rows, source)
		require.Len(t, got, 2)
		assert.Equal(t, "10:00", got[0].OpenTime.String())
		assert.Equal(t, domain.HoursRowGoogle, got[0].Source)
		assert.Equal(t, "08:00", got[1].OpenTime.String())
	}
}

func TestCanonicalize(t *testing.T) {
	c := Canonicalize("Europe/Moscow", mixedRows(), domain.HoursSourceManual)
	assert.Equal(t, "Europe/Moscow", c.Timezone)
	assert.Len(t, c.WeeklyHours, 2)
}

func TestPlanGoogleSync_ManualDaysAreSticky(t *testing.T) {
	existing := []domain.WeeklyHoursRow{
		row(1, "08:00", "12:00", domain.HoursRowManual),
		row(1, "09:00", "17:00", domain.HoursRowGoogle),
		row(5, "11:00", "15:00", domain.HoursRowManual),
	}
	fresh := []domain.WeeklyHoursRow{
		row(0, "10:00", "16:00", domain.HoursRowLegacy),
		row(1, "09:00", "18:00", domain.HoursRowGoogle),
		row(2, "09:00", "18:00", domain.HoursRowGoogle),
		row(5, "09:00", "18:00", domain.HoursRowGoogle),
	}

	upsert, skipped := PlanGoogleSync(existing, fresh, domain.HoursSourceManual)

	assert.Equal(t, []int{0, 2}, days(upsert))
	assert.Equal(t, []int{1, 5}, skipped)
	for _, r := range upsert {
		assert.Equal(t, domain.HoursRowGoogle, r.Source)
	}
}

func TestPlanGoogleSync_GoogleModeUpsertsAll(t *testing.T) {
	existing := []domain.WeeklyHoursRow{row(1, "08:00", "12:00", domain.HoursRowManual)}
	fresh := []domain.WeeklyHoursRow{
		row(1, "09:00", "18:00", domain.HoursRowGoogle),
		row(2, "09:00", "18:00", domain.HoursRowGoogle),
	}

	for _, source := range []domain.HoursSource{domain.HoursSourceGoogle, domain.HoursSourceUnset} {
		upsert, skipped := PlanGoogleSync(existing, fresh, source)
		assert.Equal(t, []int{1, 2}, days(upsert))
		assert.Empty(t, skipped)
	}
}

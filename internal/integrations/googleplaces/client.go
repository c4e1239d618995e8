package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const (
	fieldMask = "regularOpeningHours"

	lastMinuteOfDay = 23*60 + 59
)

// Client клиент Google Places API (New)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Google Places
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetWeeklyHours получает недельное расписание места и приводит его к строкам google
// Всегда возвращает 7 строк: дни без интервалов закрыты
func (c *Client) GetWeeklyHours(ctx context.Context, placeID string) ([]domain.WeeklyHoursRow, error) {
	endpoint := fmt.Sprintf("%s/v1/places/%s", c.baseURL, url.PathEscape(placeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	c.log.Info("Fetching opening hours for place_id=%s", placeID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPlaceNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var place placeResponse
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if place.RegularOpeningHours == nil {
		c.log.Warn("Place place_id=%s has no regular opening hours", placeID)
		return nil, ErrNoOpeningHours
	}

	rows, err := periodsToRows(place.RegularOpeningHours.Periods)
	if err != nil {
		return nil, err
	}

	c.log.Info("Fetched opening hours for place_id=%s, periods=%d", placeID, len(place.RegularOpeningHours.Periods))
	return rows, nil
}

// periodsToRows сводит интервалы Google к одной строке на день:
//   - несколько интервалов за день: самое раннее открытие и самое позднее закрытие
//   - интервал через полночь обрезается до 23:59 дня открытия
//   - интервал без закрытия (круглосуточно) дает 00:00–23:59; единственный такой интервал
//     означает круглосуточную работу всю неделю
func periodsToRows(periods []period) ([]domain.WeeklyHoursRow, error) {
	type window struct{ open, close int }
	windows := make(map[int]window, domain.DaysPerWeek)

	alwaysOpen := len(periods) == 1 && periods[0].Close == nil

	for _, p := range periods {
		if !validPoint(p.Open) || (p.Close != nil && !validPoint(*p.Close)) {
			return nil, fmt.Errorf("%w: invalid period %+v", ErrInvalidResponse, p)
		}

		openMin := p.Open.Hour*60 + p.Open.Minute
		closeMin := lastMinuteOfDay
		if p.Close != nil && p.Close.Day == p.Open.Day {
			closeMin = min(p.Close.Hour*60+p.Close.Minute, lastMinuteOfDay)
		}
		if p.Close == nil {
			openMin = 0
		}
		if closeMin <= openMin {
			continue
		}

		w, ok := windows[p.Open.Day]
		if !ok {
			windows[p.Open.Day] = window{open: openMin, close: closeMin}
			continue
		}
		if openMin < w.open {
			w.open = openMin
		}
		if closeMin > w.close {
			w.close = closeMin
		}
		windows[p.Open.Day] = w
	}

	rows := make([]domain.WeeklyHoursRow, 0, domain.DaysPerWeek)
	for day := 0; day < domain.DaysPerWeek; day++ {
		w, ok := windows[day]
		if alwaysOpen {
			w, ok = window{open: 0, close: lastMinuteOfDay}, true
		}

		row := domain.WeeklyHoursRow{DayOfWeek: day, Source: domain.HoursRowGoogle}
		if !ok {
			row.IsClosed = true
			rows = append(rows, row)
			continue
		}

		openAt, err := types.NewTimeStringFromMinutes(w.open)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		closeAt, err := types.NewTimeStringFromMinutes(w.close)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		row.OpenTime, row.CloseTime = &openAt, &closeAt
		rows = append(rows, row)
	}

	return rows, nil
}

func validPoint(p point) bool {
	return p.Day >= 0 && p.Day < domain.DaysPerWeek &&
		p.Hour >= 0 && p.Hour <= 24 &&
		p.Minute >= 0 && p.Minute < 60
}

// Disabled клиент для выключенной интеграции, любой запрос завершается ErrDisabled
type Disabled struct{}

func (Disabled) GetWeeklyHours(context.Context, string) ([]domain.WeeklyHoursRow, error) {
	return nil, ErrDisabled
}

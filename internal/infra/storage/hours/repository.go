package hours

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Repository репозиторий строк недельного расписания площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenue возвращает все строки расписания площадки, обоих источников
// Порядок: день недели, затем ID строки, чтобы выбор первой строки на день был стабильным
func (r *Repository) GetByVenue(ctx context.Context, venueID int64) ([]domain.WeeklyHoursRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_closed",
		"open_time",
		"close_time",
		"source",
	).
		From("venue_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("day_of_week ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WeeklyHoursRow, 0)
	for rows.Next() {
		var row domain.WeeklyHoursRow
		var openTime, closeTime types.TimeString

		if err := rows.Scan(&row.DayOfWeek, &row.IsClosed, &openTime, &closeTime, &row.Source); err != nil {
			return nil, fmt.Errorf("%w: GetByVenue - scan row: %v", ErrScanRow, err)
		}

		if !openTime.IsZero() {
			row.OpenTime = &openTime
		}
		if !closeTime.IsZero() {
			row.CloseTime = &closeTime
		}

		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert вставляет или обновляет строки по ключу (venue_id, day_of_week, source)
// Строки другого источника на тот же день не затрагиваются
func (r *Repository) Upsert(ctx context.Context, venueID int64, rows []domain.WeeklyHoursRow) error {
	if len(rows) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("venue_hours").
		Columns("venue_id", "day_of_week", "is_closed", "open_time", "close_time", "source")
	for _, row := range rows {
		insert = insert.Values(venueID, row.DayOfWeek, row.IsClosed, row.OpenTime, row.CloseTime, row.Source)
	}

	query, args, err := insert.
		Suffix(`ON CONFLICT ON CONSTRAINT venue_hours_venue_day_source_key DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteLegacyDays удаляет строки без источника (legacy) на указанные дни
// Вызывается в транзакции синхронизации перед Upsert google строк
func (r *Repository) DeleteLegacyDays(ctx context.Context, venueID int64, days []int) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venue_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"source": nil}).
		Where(squirrel.Eq{"day_of_week": days}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteLegacyDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteLegacyDays - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteManualExcept удаляет ручные строки площадки на все дни, кроме keepDays
// Пустой keepDays удаляет все ручные строки
func (r *Repository) DeleteManualExcept(ctx context.Context, venueID int64, keepDays []int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Delete("venue_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"source": domain.HoursRowManual})
	if len(keepDays) > 0 {
		builder = builder.Where(squirrel.NotEq{"day_of_week": keepDays})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteManualExcept - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteManualExcept - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

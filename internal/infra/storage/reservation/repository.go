package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const (
	pqExclusionViolation   = "23P01"
	pqSerializationFailure = "40001"
)

var reservationColumns = []string{
	"id",
	"venue_id",
	"user_id",
	"seat_id",
	"table_id",
	"start_at",
	"end_at",
	"seat_count",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsOverlapError проверяет, что ошибка означает проигранную гонку за место:
// нарушение ограничения исключения или конфликт сериализации (в том числе при COMMIT)
func IsOverlapError(err error) bool {
	if errors.Is(err, ErrOverlap) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqExclusionViolation || pqErr.Code == pqSerializationFailure
	}
	return false
}

// readError оборачивает ошибку чтения
// Конфликт сериализации и нарушение исключения возвращаются как ErrOverlap
func readError(sentinel error, op string, err error) error {
	if IsOverlapError(err) {
		return fmt.Errorf("%w: %s: %v", ErrOverlap, op, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}

// Create создает бронирование
// Если в контексте есть транзакция, выполняется в ней.
// Пересечение с активной бронью того же места или стола отклоняется БД и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.Status == "" {
		res.Status = domain.ReservationActive
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"venue_id",
			"user_id",
			"seat_id",
			"table_id",
			"start_at",
			"end_at",
			"seat_count",
			"status",
			"notes",
		).
		Values(
			res.VenueID,
			res.UserID,
			res.SeatID,
			res.TableID,
			res.StartAt.UTC(),
			res.EndAt.UTC(),
			res.SeatCount,
			res.Status,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		if IsOverlapError(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.StartAt = res.StartAt.UTC()
	res.EndAt = res.EndAt.UTC()
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, readError(ErrScanRow, "GetByID - scan reservation", err)
	}

	return res, nil
}

// GetByUserID получает бронирования пользователя, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByVenueWithFilter получает бронирования площадки с фильтрацией
// From/To выбирают бронирования, пересекающиеся с [From, To):
//
//	from := time.Now()
//	to := from.Add(13 * time.Hour)
//	filter := domain.VenueReservationsFilter{VenueID: 1, From: &from, To: &to}
//
// Без Status и IncludeCancelled отмененные брони исключаются.
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.To.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.ReservationCancelled})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError(ErrExecQuery, "GetByVenueWithFilter - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetOverlapping активные бронирования площадки, пересекающиеся с [start, end)
// excludeID исключает редактируемое бронирование
func (r *Repository) GetOverlapping(ctx context.Context, venueID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	return r.GetByVenueWithFilter(ctx, domain.VenueReservationsFilter{
		VenueID:   venueID,
		From:      &start,
		To:        &end,
		ExcludeID: excludeID,
	})
}

// Update сохраняет новое время, место, стол, число мест и заметку бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("seat_id", res.SeatID).
		Set("table_id", res.TableID).
		Set("start_at", res.StartAt.UTC()).
		Set("end_at", res.EndAt.UTC()).
		Set("seat_count", res.SeatCount).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		if IsOverlapError(err) {
			return nil, fmt.Errorf("%w: Update: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	res.StartAt = res.StartAt.UTC()
	res.EndAt = res.EndAt.UTC()
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// Cancel отменяет активное бронирование с указанием причины
// Повторная отмена возвращает ErrReservationNotFound
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReservationActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.VenueID,
		&res.UserID,
		&res.SeatID,
		&res.TableID,
		&res.StartAt,
		&res.EndAt,
		&res.SeatCount,
		&res.Status,
		&res.Notes,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.StartAt = res.StartAt.UTC()
	res.EndAt = res.EndAt.UTC()
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, readError(ErrScanRow, "scanReservations - rows error", err)
	}

	return reservations, nil
}

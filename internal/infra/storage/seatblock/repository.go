package seatblock

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

var seatBlockColumns = []string{
	"id",
	"venue_id",
	"seat_id",
	"start_at",
	"end_at",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий блокировок мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку места или всей площадки (SeatID == nil)
func (r *Repository) Create(ctx context.Context, block *domain.SeatBlock) (*domain.SeatBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("seat_blocks").
		Columns("venue_id", "seat_id", "start_at", "end_at", "reason", "created_by").
		Values(block.VenueID, block.SeatID, block.StartAt.UTC(), block.EndAt.UTC(), block.Reason, block.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.StartAt = block.StartAt.UTC()
	block.EndAt = block.EndAt.UTC()
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SeatBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(seatBlockColumns...).
		From("seat_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.SeatBlock
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.VenueID,
		&block.SeatID,
		&block.StartAt,
		&block.EndAt,
		&block.Reason,
		&block.CreatedBy,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSeatBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan seat block: %v", ErrScanRow, err)
	}

	block.StartAt = block.StartAt.UTC()
	block.EndAt = block.EndAt.UTC()
	block.CreatedAt = createdAt.Time

	return &block, nil
}

// ListByVenue блокировки площадки, пересекающиеся с [from, to); границы опциональны
func (r *Repository) ListByVenue(ctx context.Context, venueID int64, from, to *time.Time) ([]*domain.SeatBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(seatBlockColumns...).
		From("seat_blocks").
		Where(squirrel.Eq{"venue_id": venueID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": from.UTC()})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": to.UTC()})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSeatBlocks(rows)
}

// GetOverlapping блокировки площадки, пересекающиеся с [start, end)
func (r *Repository) GetOverlapping(ctx context.Context, venueID int64, start, end time.Time) ([]*domain.SeatBlock, error) {
	return r.ListByVenue(ctx, venueID, &start, &end)
}

// Delete удаляет блокировку площадки
func (r *Repository) Delete(ctx context.Context, venueID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("seat_blocks").
		Where(squirrel.Eq{"id": id, "venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSeatBlockNotFound
	}

	return nil
}

// scanSeatBlocks сканирует результаты запроса в слайс блокировок
func scanSeatBlocks(rows *sql.Rows) ([]*domain.SeatBlock, error) {
	blocks := make([]*domain.SeatBlock, 0)

	for rows.Next() {
		var block domain.SeatBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.VenueID,
			&block.SeatID,
			&block.StartAt,
			&block.EndAt,
			&block.Reason,
			&block.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSeatBlocks - scan row: %v", ErrScanRow, err)
		}

		block.StartAt = block.StartAt.UTC()
		block.EndAt = block.EndAt.UTC()
		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSeatBlocks - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

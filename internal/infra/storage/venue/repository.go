package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

// Repository репозиторий площадок, их столов и мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает площадку вместе со списком менеджеров
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns("name", "timezone", "hours_source", "google_place_id").
		Values(venue.Name, venue.Timezone, venue.HoursSource, venue.GooglePlaceID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&venue.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	if len(venue.ManagerIDs) == 0 {
		return venue, nil
	}

	insert := psqlbuilder.Insert("venue_managers").Columns("venue_id", "user_id")
	for _, userID := range venue.ManagerIDs {
		insert = insert.Values(venue.ID, userID)
	}
	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build managers insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - insert managers: %v", ErrExecQuery, err)
	}

	return venue, nil
}

// CreateTable создает стол и его места
func (r *Repository) CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_tables").
		Columns("venue_id", "name", "seat_count", "is_active").
		Values(table.VenueID, table.Name, table.SeatCount, table.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTable - build insert query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&table.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateTable - execute insert: %v", ErrExecQuery, err)
	}

	for i := range table.Seats {
		seat := &table.Seats[i]
		seat.TableID = table.ID

		query, args, err := psqlbuilder.Insert("seats").
			Columns("table_id", "label", "is_active").
			Values(seat.TableID, seat.Label, seat.IsActive).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateTable - build seat insert: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&seat.ID); err != nil {
			return nil, fmt.Errorf("%w: CreateTable - insert seat: %v", ErrExecQuery, err)
		}
	}

	return table, nil
}

// GetByID получает площадку по ID вместе с менеджерами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"hours_source",
		"google_place_id",
		"created_at",
		"updated_at",
	).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Timezone,
		&venue.HoursSource,
		&venue.GooglePlaceID,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %w", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	venue.ManagerIDs, err = r.getManagerIDs(ctx, executor, id)
	if err != nil {
		return nil, err
	}

	return &venue, nil
}

// GetTables получает столы площадки с местами, упорядоченные по ID
func (r *Repository) GetTables(ctx context.Context, venueID int64) ([]domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "venue_id", "name", "seat_count", "is_active").
		From("venue_tables").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTables - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Name, &t.SeatCount, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetTables - scan table: %v", ErrScanRow, err)
		}
		index[t.ID] = len(tables)
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTables - rows error: %w", ErrScanRow, err)
	}

	if len(tables) == 0 {
		return tables, nil
	}

	query, args, err = psqlbuilder.Select("s.id", "s.table_id", "s.label", "s.is_active").
		From("seats s").
		Join("venue_tables t ON t.id = s.table_id").
		Where(squirrel.Eq{"t.venue_id": venueID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTables - build seats query: %v", ErrBuildQuery, err)
	}

	seatRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTables - execute seats query: %w", ErrExecQuery, err)
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var s domain.Seat
		if err := seatRows.Scan(&s.ID, &s.TableID, &s.Label, &s.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetTables - scan seat: %v", ErrScanRow, err)
		}
		if i, ok := index[s.TableID]; ok {
			tables[i].Seats = append(tables[i].Seats, s)
		}
	}
	if err := seatRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTables - seats rows error: %w", ErrScanRow, err)
	}

	return tables, nil
}

// UpdateHoursSource переключает режим приоритета расписания площадки
func (r *Repository) UpdateHoursSource(ctx context.Context, id int64, source domain.HoursSource) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("hours_source", source).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateHoursSource - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateHoursSource - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateHoursSource - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}

	return nil
}

func (r *Repository) getManagerIDs(ctx context.Context, executor DBExecutor, venueID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("user_id").
		From("venue_managers").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getManagerIDs - scan user_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

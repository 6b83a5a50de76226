package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SBS-SchedulingService/pkg/psqlbuilder"
)

// configRowID конфигурация хранится единственной строкой
const configRowID = 1

// Repository репозиторий конфигурации расписания и исключений по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig получает конфигурацию расписания (единственная строка)
func (r *Repository) GetConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_hour",
		"end_hour",
		"slot_interval_minutes",
		"closed_weekday",
		"updated_at",
	).
		From("schedule_config").
		Where(squirrel.Eq{"id": configRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.StartHour,
		&cfg.EndHour,
		&cfg.SlotIntervalMinutes,
		&cfg.ClosedWeekday,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// UpdateConfig обновляет конфигурацию расписания (upsert единственной строки)
func (r *Repository) UpdateConfig(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns("id", "start_hour", "end_hour", "slot_interval_minutes", "closed_weekday").
		Values(configRowID, cfg.StartHour, cfg.EndHour, cfg.SlotIntervalMinutes, cfg.ClosedWeekday).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			closed_weekday = EXCLUDED.closed_weekday,
			updated_at = NOW()
		RETURNING id, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpdateConfig - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetException получает исключение на конкретную дату
// Возвращает ErrExceptionNotFound, если на дату нет переопределения
func (r *Repository) GetException(ctx context.Context, date time.Time) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := exceptionSelect().
		Where(squirrel.Eq{"exception_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetException - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	exc, err := scanException(row)
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetException - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// ListExceptions получает все исключения начиная с указанной даты
func (r *Repository) ListExceptions(ctx context.Context, from time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := exceptionSelect().
		Where(squirrel.GtOrEq{"exception_date": dateOnly(from)}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan exception: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - iterate rows: %v", ErrExecQuery, err)
	}

	return exceptions, nil
}

// UpsertException создает или обновляет исключение на дату
func (r *Repository) UpsertException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns(
			"exception_date",
			"start_hour",
			"end_hour",
			"closed",
			"lunch_start_hour",
			"lunch_end_hour",
		).
		Values(
			dateOnly(exc.Date),
			exc.StartHour,
			exc.EndHour,
			exc.Closed,
			exc.LunchStartHour,
			exc.LunchEndHour,
		).
		Suffix(`ON CONFLICT (exception_date) DO UPDATE SET
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			closed = EXCLUDED.closed,
			lunch_start_hour = EXCLUDED.lunch_start_hour,
			lunch_end_hour = EXCLUDED.lunch_end_hour,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertException - execute upsert: %v", ErrExecQuery, err)
	}

	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// DeleteException удаляет исключение на дату, возвращая дату к расписанию по умолчанию
func (r *Repository) DeleteException(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"exception_date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func exceptionSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"exception_date",
		"start_hour",
		"end_hour",
		"closed",
		"lunch_start_hour",
		"lunch_end_hour",
		"updated_at",
	).From("schedule_exceptions")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var exc domain.ScheduleException
	var updatedAt sql.NullTime

	err := row.Scan(
		&exc.Date,
		&exc.StartHour,
		&exc.EndHour,
		&exc.Closed,
		&exc.LunchStartHour,
		&exc.LunchEndHour,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}

// dateOnly обнуляет время, чтобы ключом была только календарная дата
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с повторяющимися окнами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByDay получает активные окна консультантов на указанный день недели
func (r *Repository) GetActiveByDay(ctx context.Context, consultantIDs []int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"consultant_id": consultantIDs}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("consultant_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "GetActiveByDay")
}

// GetActiveByConsultantAndDay получает активные окна одного консультанта на день недели
func (r *Repository) GetActiveByConsultantAndDay(ctx context.Context, consultantID int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error) {
	return r.GetActiveByDay(ctx, []int64{consultantID}, dayOfWeek)
}

// GetByConsultant получает все окна консультанта (включая неактивные)
func (r *Repository) GetByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "GetByConsultant")
}

// CountAll возвращает общее количество окон, настроенных во всей системе
// Используется резолвером как триггер system-wide fallback правила:
// дефолтное окно 09:00-17:00 применяется, только если этот счетчик равен нулю
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("availability_slots").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAll - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAll - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByConsultant возвращает количество окон, когда-либо настроенных для консультанта
// Используется валидатором как триггер per-consultant fallback правила
func (r *Repository) CountByConsultant(ctx context.Context, consultantID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("availability_slots").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByConsultant - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"consultant_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_active",
		).
		Values(
			slot.ConsultantID,
			slot.DayOfWeek,
			slot.StartTime,
			slot.EndTime,
			slot.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// DeleteByConsultant удаляет все окна консультанта
// Используется при полной замене недельного расписания
func (r *Repository) DeleteByConsultant(ctx context.Context, consultantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByConsultant - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByConsultant - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// SetActive включает или выключает окно
func (r *Repository) SetActive(ctx context.Context, id int64, isActive bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("is_active", isActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс окон доступности
func (r *Repository) scanSlots(rows *sql.Rows, op string) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		var slot domain.AvailabilitySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.ConsultantID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

package meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/psqlbuilder"
)

// exclusionViolation код ошибки postgres при нарушении EXCLUDE constraint
const exclusionViolation = "23P01"

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
// Таблица meetings несет EXCLUDE constraint по (consultant_id, период) для активных
// статусов, поэтому пересекающаяся вставка падает на уровне БД даже при гонке двух
// одновременных бронирований. Нарушение конвертируется в ErrMeetingConflict
func (r *Repository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("meetings").
		Columns(
			"consultant_id",
			"lead_id",
			"start_at",
			"end_at",
			"status",
			"lead_name",
			"lead_company",
			"notes",
		).
		Values(
			meeting.ConsultantID,
			meeting.LeadID,
			meeting.StartAt,
			meeting.EndAt,
			meeting.Status,
			meeting.LeadName,
			meeting.LeadCompany,
			meeting.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&meeting.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrMeetingConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return meeting, nil
}

// GetByID получает встречу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectMeetingColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	meeting, err := scanMeetingRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan meeting: %v", ErrScanRow, err)
	}

	return meeting, nil
}

// GetInRange получает активные встречи консультантов, пересекающиеся с [from, to)
// Фильтр по статусам совпадает с ограничением meetings_no_overlap в БД: отмененные
// и завершенные встречи время не занимают. Внутри транзакции строки блокируются
// FOR UPDATE - выборка используется при создании встречи для повторной проверки конфликтов
func (r *Repository) GetInRange(ctx context.Context, consultantIDs []int64, from, to time.Time) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveMeetingStatuses))
	for i, s := range domain.ActiveMeetingStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := selectMeetingColumns().
		Where(squirrel.Eq{"consultant_id": consultantIDs}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("consultant_id ASC, start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows, "GetInRange")
}

// GetWithFilter получает встречи консультанта с гибкой фильтрацией
// Поддерживает фильтрацию по лиду, периоду, статусу и включению неактивных встреч
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectMeetingColumns().
		Where(squirrel.Eq{"consultant_id": filter.ConsultantID})

	if filter.LeadID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lead_id": *filter.LeadID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveMeetingStatuses))
		for i, s := range domain.InactiveMeetingStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanMeetings(rows, "GetWithFilter")
}

// Cancel отменяет встречу с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("meetings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
		return ErrMeetingNotFound
	}

	return nil
}

// Reschedule переносит встречу на новый интервал и помечает её RESCHEDULED
// EXCLUDE constraint защищает от переноса на занятое время
func (r *Repository) Reschedule(ctx context.Context, id int64, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("meetings").
		Set("start_at", startAt).
		Set("end_at", endAt).
		Set("status", domain.StatusRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrMeetingConflict
		}
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус встречи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MeetingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("meetings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

// selectMeetingColumns возвращает builder с полным набором колонок встречи
func selectMeetingColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"consultant_id",
		"lead_id",
		"start_at",
		"end_at",
		"status",
		"lead_name",
		"lead_company",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("meetings")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMeetingRow сканирует одну строку в модель встречи
func scanMeetingRow(row rowScanner) (*domain.Meeting, error) {
	var meeting domain.Meeting
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&meeting.ID,
		&meeting.ConsultantID,
		&meeting.LeadID,
		&meeting.StartAt,
		&meeting.EndAt,
		&meeting.Status,
		&meeting.LeadName,
		&meeting.LeadCompany,
		&meeting.Notes,
		&meeting.CancellationReason,
		&meeting.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return &meeting, nil
}

// scanMeetings сканирует результаты запроса в слайс встреч
func scanMeetings(rows *sql.Rows, op string) ([]*domain.Meeting, error) {
	meetings := make([]*domain.Meeting, 0)

	for rows.Next() {
		meeting, err := scanMeetingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return meetings, nil
}

// isExclusionViolation проверяет, что ошибка вызвана нарушением EXCLUDE constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation
}

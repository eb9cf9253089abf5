package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с разовыми блокировками доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetInRange получает блокировки консультантов, пересекающиеся с интервалом [from, to)
// Пересечение строгое: блокировка, заканчивающаяся ровно в from, не попадает в выборку
func (r *Repository) GetInRange(ctx context.Context, consultantIDs []int64, from, to time.Time) ([]*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
	).
		From("availability_blocks").
		Where(squirrel.Eq{"consultant_id": consultantIDs}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("consultant_id ASC, start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "GetInRange")
}

// GetByConsultantInRange получает блокировки одного консультанта в интервале
func (r *Repository) GetByConsultantInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*domain.AvailabilityBlock, error) {
	return r.GetInRange(ctx, []int64{consultantID}, from, to)
}

// GetByConsultant получает все блокировки консультанта
func (r *Repository) GetByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
	).
		From("availability_blocks").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "GetByConsultant")
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, blk *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_blocks").
		Columns(
			"consultant_id",
			"start_at",
			"end_at",
			"reason",
		).
		Values(
			blk.ConsultantID,
			blk.StartAt,
			blk.EndAt,
			blk.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blk.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	blk.CreatedAt = createdAt.Time

	return blk, nil
}

// Delete удаляет блокировку консультанта
// consultantID в условии гарантирует, что нельзя удалить чужую блокировку
func (r *Repository) Delete(ctx context.Context, id, consultantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_blocks").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"consultant_id": consultantID}).
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
		return ErrBlockNotFound
	}

	return nil
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlocks(rows *sql.Rows, op string) ([]*domain.AvailabilityBlock, error) {
	blocks := make([]*domain.AvailabilityBlock, 0)

	for rows.Next() {
		var blk domain.AvailabilityBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&blk.ID,
			&blk.ConsultantID,
			&blk.StartAt,
			&blk.EndAt,
			&blk.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		blk.CreatedAt = createdAt.Time

		blocks = append(blocks, &blk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return blocks, nil
}

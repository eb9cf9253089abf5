package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения пользователей CRM
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveConsultants получает активных пользователей с указанными ролями
// Порядок детерминированный (ORDER BY id ASC) - от него зависит политика
// "первый подходящий консультант" при назначении слотов
func (r *Repository) GetActiveConsultants(ctx context.Context, roles []domain.UserRole) ([]*domain.Consultant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"role",
		"status",
	).
		From("users").
		Where(squirrel.Eq{"role": roleStrings}).
		Where(squirrel.Eq{"status": string(domain.UserStatusActive)}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConsultants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConsultants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	consultants := make([]*domain.Consultant, 0)
	for rows.Next() {
		var c domain.Consultant
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.Status); err != nil {
			return nil, fmt.Errorf("%w: GetActiveConsultants - scan row: %v", ErrScanRow, err)
		}
		consultants = append(consultants, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveConsultants - rows error: %v", ErrScanRow, err)
	}

	return consultants, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"role",
		"status",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Consultant
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Role, &c.Status)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	return &c, nil
}

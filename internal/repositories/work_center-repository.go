package repositories

import (
	"context"
	"errors"
	"fmt"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	workCenterTable  = "work_centers"
	workCenterFields = "id, name, created_at, updated_at"
)

type WorkCenterRepositoryInterface interface {
	GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error)
	FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error)
	DeleteWorkCenter(ctx context.Context, id uint64) error
}

type workCenterRepository struct{ storage *pgxpool.Pool }

func NewWorkCenterRepository(storage *pgxpool.Pool) WorkCenterRepositoryInterface {
	return &workCenterRepository{storage: storage}
}

func scanWorkCenter(row pgx.Row) (*entities.WorkCenter, error) {
	var wc entities.WorkCenter
	err := row.Scan(&wc.ID, &wc.Name, &wc.CreatedAt, &wc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &wc, nil
}

func (r *workCenterRepository) GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", workCenterFields, workCenterTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entities.WorkCenter, 0)
	for rows.Next() {
		wc, err := scanWorkCenter(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *wc)
	}
	return list, rows.Err()
}

func (r *workCenterRepository) FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", workCenterFields, workCenterTable)
	return scanWorkCenter(r.storage.QueryRow(ctx, query, id))
}

func (r *workCenterRepository) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING %s", workCenterTable, workCenterFields)
	wc, err := scanWorkCenter(r.storage.QueryRow(ctx, query, payload.Name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return wc, nil
}

func (r *workCenterRepository) UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	if payload.Name == nil {
		return r.FindWorkCenter(ctx, id)
	}
	query := fmt.Sprintf("UPDATE %s SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING %s", workCenterTable, workCenterFields)
	wc, err := scanWorkCenter(r.storage.QueryRow(ctx, query, *payload.Name, id))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return wc, nil
}

func (r *workCenterRepository) DeleteWorkCenter(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", workCenterTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

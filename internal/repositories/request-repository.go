package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	requestTable  = "maintenance_requests"
	requestFields = `id, subject, created_by, maintenance_for, equipment, equipment_id, work_center,
		category, request_date, created_date, maintenance_type, team, technician,
		scheduled_date, scheduled_time, duration, priority, company, stage,
		completed_date, notes, instructions, worksheet, created_at, updated_at`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateStage(ctx context.Context, id uint64, stage, completedDate string) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type requestRepository struct{ storage *pgxpool.Pool }

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &requestRepository{storage: storage}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var (
		req          entities.MaintenanceRequest
		worksheetRaw []byte
	)
	err := row.Scan(&req.ID, &req.Subject, &req.CreatedBy, &req.MaintenanceFor, &req.Equipment,
		&req.EquipmentID, &req.WorkCenter, &req.Category, &req.RequestDate, &req.CreatedDate,
		&req.MaintenanceType, &req.Team, &req.Technician, &req.ScheduledDate, &req.ScheduledTime,
		&req.Duration, &req.Priority, &req.Company, &req.Stage, &req.CompletedDate,
		&req.Notes, &req.Instructions, &worksheetRaw, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	req.Worksheet = make([]entities.WorksheetItem, 0)
	if len(worksheetRaw) > 0 {
		if err := json.Unmarshal(worksheetRaw, &req.Worksheet); err != nil {
			return nil, fmt.Errorf("не удалось разобрать worksheet заявки %d: %w", req.ID, err)
		}
	}
	return &req, nil
}

func (r *requestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error) {
	builder := psql.Select(requestFields).From(requestTable).OrderBy("id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"subject": pattern},
			sq.ILike{"equipment": pattern},
		})
	}
	if filter.Team != "" && filter.Team != "All" {
		builder = builder.Where(sq.Eq{"team": filter.Team})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]entities.MaintenanceRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *requestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", requestFields, requestTable)
	return scanRequest(r.storage.QueryRow(ctx, query, id))
}

func (r *requestRepository) CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	worksheetRaw, err := json.Marshal(req.Worksheet)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (subject, created_by, maintenance_for, equipment, equipment_id,
		work_center, category, request_date, created_date, maintenance_type, team, technician,
		scheduled_date, scheduled_time, duration, priority, company, stage, completed_date,
		notes, instructions, worksheet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING %s`, requestTable, requestFields)

	row := r.storage.QueryRow(ctx, query, req.Subject, req.CreatedBy, req.MaintenanceFor,
		req.Equipment, req.EquipmentID, req.WorkCenter, req.Category, req.RequestDate,
		req.CreatedDate, req.MaintenanceType, req.Team, req.Technician, req.ScheduledDate,
		req.ScheduledTime, req.Duration, req.Priority, req.Company, req.Stage,
		req.CompletedDate, req.Notes, req.Instructions, worksheetRaw)

	created, err := scanRequest(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *requestRepository) UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	worksheetRaw, err := json.Marshal(req.Worksheet)
	if err != nil {
		return nil, err
	}

	// Форма шлёт полный снимок заявки, поэтому обновление полнострочное.
	query := fmt.Sprintf(`UPDATE %s SET subject = $1, maintenance_for = $2, equipment = $3,
		equipment_id = $4, work_center = $5, category = $6, request_date = $7,
		maintenance_type = $8, team = $9, technician = $10, scheduled_date = $11,
		scheduled_time = $12, duration = $13, priority = $14, company = $15, stage = $16,
		completed_date = $17, notes = $18, instructions = $19, worksheet = $20, updated_at = NOW()
		WHERE id = $21 RETURNING %s`, requestTable, requestFields)

	row := r.storage.QueryRow(ctx, query, req.Subject, req.MaintenanceFor, req.Equipment,
		req.EquipmentID, req.WorkCenter, req.Category, req.RequestDate, req.MaintenanceType,
		req.Team, req.Technician, req.ScheduledDate, req.ScheduledTime, req.Duration,
		req.Priority, req.Company, req.Stage, req.CompletedDate, req.Notes, req.Instructions,
		worksheetRaw, id)

	return scanRequest(row)
}

func (r *requestRepository) UpdateStage(ctx context.Context, id uint64, stage, completedDate string) error {
	query := fmt.Sprintf("UPDATE %s SET stage = $1, completed_date = $2, updated_at = NOW() WHERE id = $3", requestTable)
	result, err := r.storage.Exec(ctx, query, stage, completedDate, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", requestTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	equipmentTable  = "equipment"
	equipmentFields = "id, name, serial_number, category, department, company, employee, technician, team, created_at, updated_at"
)

type EquipmentRepositoryInterface interface {
	GetEquipment(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type equipmentRepository struct{ storage *pgxpool.Pool }

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Department,
		&e.Company, &e.Employee, &e.Technician, &e.Team, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *equipmentRepository) GetEquipment(ctx context.Context) ([]entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", equipmentFields, equipmentTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *equipmentRepository) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, serial_number, category, department, company, employee, technician, team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s`, equipmentTable, equipmentFields)
	row := r.storage.QueryRow(ctx, query, payload.Name, payload.SerialNumber, payload.Category,
		payload.Department, payload.Company, payload.Employee, payload.Technician, payload.Team)
	e, err := scanEquipment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	var setClauses []string
	var args []interface{}
	argId := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argId))
		args = append(args, value)
		argId++
	}

	if payload.Name != nil {
		addSet("name", *payload.Name)
	}
	if payload.SerialNumber != nil {
		addSet("serial_number", *payload.SerialNumber)
	}
	if payload.Category != nil {
		addSet("category", *payload.Category)
	}
	if payload.Department != nil {
		addSet("department", *payload.Department)
	}
	if payload.Company != nil {
		addSet("company", *payload.Company)
	}
	if payload.Employee != nil {
		addSet("employee", *payload.Employee)
	}
	if payload.Technician != nil {
		addSet("technician", *payload.Technician)
	}
	if payload.Team != nil {
		addSet("team", *payload.Team)
	}
	if len(setClauses) == 0 {
		return r.FindEquipment(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		equipmentTable, strings.Join(setClauses, ", "), argId, equipmentFields)
	args = append(args, id)

	e, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return e, nil
}

func (r *equipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

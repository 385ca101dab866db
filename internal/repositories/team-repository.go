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
	teamTable  = "teams"
	teamFields = "id, name, members, specialization, company, notes, created_at, updated_at"
)

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type teamRepository struct{ storage *pgxpool.Pool }

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &teamRepository{storage: storage}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Members, &t.Specialization, &t.Company, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if t.Members == nil {
		t.Members = []string{}
	}
	return &t, nil
}

func (r *teamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", teamFields, teamTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *teamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", teamFields, teamTable)
	return scanTeam(r.storage.QueryRow(ctx, query, id))
}

func (r *teamRepository) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	members := payload.Members
	if members == nil {
		members = []string{}
	}
	query := fmt.Sprintf(`INSERT INTO %s (name, members, specialization, company, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING %s`, teamTable, teamFields)
	row := r.storage.QueryRow(ctx, query, payload.Name, members, payload.Specialization, payload.Company, payload.Notes)
	t, err := scanTeam(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
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
	if payload.Members != nil {
		addSet("members", *payload.Members)
	}
	if payload.Specialization != nil {
		addSet("specialization", *payload.Specialization)
	}
	if payload.Company != nil {
		addSet("company", *payload.Company)
	}
	if payload.Notes != nil {
		addSet("notes", *payload.Notes)
	}
	if len(setClauses) == 0 {
		return r.FindTeam(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		teamTable, strings.Join(setClauses, ", "), argId, teamFields)
	args = append(args, id)

	t, err := scanTeam(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", teamTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

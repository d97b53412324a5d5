package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"evalux/internal/common"
	"evalux/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, int, error)
	Stats(ctx context.Context) (*model.UserStats, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	interests, err := json.Marshal(user.Interests)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Create marshal interests: %w", err)
	}

	query := `INSERT INTO users (id, username, email, hashed_password, interests, role)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, interests, user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgUserRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT id, username, email, hashed_password, interests, role, created_at, updated_at
	          FROM users WHERE %s = $1`, column)
	user := &model.User{}
	var interests []byte
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &interests, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findBy %s: %w", column, err)
	}
	if err := json.Unmarshal(interests, &user.Interests); err != nil {
		return nil, fmt.Errorf("pgUserRepository.findBy unmarshal interests: %w", err)
	}
	return user, nil
}

// Stats aggregates registration counts and the interests breakdown in two
// queries; the JSONB interests column is unnested server-side.
func (r *pgUserRepository) Stats(ctx context.Context) (*model.UserStats, error) {
	stats := &model.UserStats{Interests: map[string]int{}}

	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE),
	                 COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE - INTERVAL '7 days')
	          FROM users`
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Today, &stats.ThisWeek); err != nil {
		return nil, fmt.Errorf("pgUserRepository.Stats counts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT interest, COUNT(*)
	          FROM users, jsonb_array_elements_text(interests) AS interest
	          GROUP BY interest`)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Stats interests query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var interest string
		var count int
		if err := rows.Scan(&interest, &count); err != nil {
			return nil, fmt.Errorf("pgUserRepository.Stats interests scan: %w", err)
		}
		stats.Interests[interest] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.Stats rows.Err: %w", err)
	}
	return stats, nil
}

func (r *pgUserRepository) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List count: %w", err)
	}

	query := `SELECT id, username, email, interests, role, created_at, updated_at
	          FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var interests []byte
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &interests, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		if err := json.Unmarshal(interests, &u.Interests); err != nil {
			return nil, 0, fmt.Errorf("pgUserRepository.List unmarshal interests: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List rows.Err: %w", err)
	}
	return users, total, nil
}

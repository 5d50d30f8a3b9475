package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
)

const uniqueViolation = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// CreateUser inserts the credentials row and its empty account in one
// transaction. Unique violations surface as the auth conflict sentinels so
// concurrent registrations fail cleanly.
func (r *UserRepo) CreateUser(ctx context.Context, username, email, hashedPassword string) (authsvc.UserRecord, error) {
	if r.pool == nil {
		return authsvc.UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return authsvc.UserRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user := authsvc.UserRecord{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO users (id, username, email, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
`, user.ID, user.Username, user.Email, user.Password); err != nil {
		return authsvc.UserRecord{}, mapUserConflict(err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO accounts (user_id, created_at, updated_at)
VALUES ($1, NOW(), NOW())
`, user.ID); err != nil {
		return authsvc.UserRecord{}, fmt.Errorf("create account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return authsvc.UserRecord{}, fmt.Errorf("commit tx: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (authsvc.UserRecord, error) {
	return r.getUserBy(ctx, "username", username)
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (authsvc.UserRecord, error) {
	return r.getUserBy(ctx, "email", email)
}

func (r *UserRepo) getUserBy(ctx context.Context, column, value string) (authsvc.UserRecord, error) {
	if r.pool == nil {
		return authsvc.UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var user authsvc.UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, password
FROM users
WHERE `+column+` = $1
`, value).Scan(&user.ID, &user.Username, &user.Email, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.UserRecord{}, authsvc.ErrUserNotFound
		}
		return authsvc.UserRecord{}, fmt.Errorf("find user by %s: %w", column, err)
	}

	return user, nil
}

func mapUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return authsvc.ErrUsernameTaken
		}
		if strings.Contains(pgErr.ConstraintName, "email") {
			return authsvc.ErrEmailTaken
		}
	}
	return fmt.Errorf("create user: %w", err)
}

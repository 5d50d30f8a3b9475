package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	userssvc "github.com/linkup-app/backend/internal/services/users"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `
a.user_id, u.username, u.email, a.fullname, a.title, a.image, a.cover`

func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]userssvc.Account, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+accountColumns+`
FROM accounts a
JOIN users u ON u.id = a.user_id
ORDER BY a.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]userssvc.Account, 0, limit)
	for rows.Next() {
		var a userssvc.Account
		if err := rows.Scan(&a.UserID, &a.Username, &a.Email, &a.Fullname, &a.Title, &a.Image, &a.Cover); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepo) GetByUserID(ctx context.Context, userID string) (userssvc.Account, error) {
	return r.getBy(ctx, "a.user_id", userID)
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (userssvc.Account, error) {
	return r.getBy(ctx, "u.username", username)
}

func (r *AccountRepo) getBy(ctx context.Context, column, value string) (userssvc.Account, error) {
	if r.pool == nil {
		return userssvc.Account{}, fmt.Errorf("postgres pool is nil")
	}

	var a userssvc.Account
	err := r.pool.QueryRow(ctx, `
SELECT `+accountColumns+`
FROM accounts a
JOIN users u ON u.id = a.user_id
WHERE `+column+` = $1
`, value).Scan(&a.UserID, &a.Username, &a.Email, &a.Fullname, &a.Title, &a.Image, &a.Cover)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userssvc.Account{}, userssvc.ErrNotFound
		}
		return userssvc.Account{}, fmt.Errorf("get account: %w", err)
	}

	return a, nil
}

// UpdateProfile overwrites only the provided fields; empty strings keep the
// stored value.
func (r *AccountRepo) UpdateProfile(ctx context.Context, userID, fullname, title string) (userssvc.Account, error) {
	if r.pool == nil {
		return userssvc.Account{}, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE accounts
SET fullname = CASE WHEN $2 <> '' THEN $2 ELSE fullname END,
	title = CASE WHEN $3 <> '' THEN $3 ELSE title END,
	updated_at = NOW()
WHERE user_id = $1
`, userID, fullname, title)
	if err != nil {
		return userssvc.Account{}, fmt.Errorf("update account profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return userssvc.Account{}, userssvc.ErrNotFound
	}

	return r.GetByUserID(ctx, userID)
}

func (r *AccountRepo) UpdateImage(ctx context.Context, userID, field, url string) (userssvc.Account, error) {
	if r.pool == nil {
		return userssvc.Account{}, fmt.Errorf("postgres pool is nil")
	}

	var query string
	switch field {
	case userssvc.ImageFieldAvatar:
		query = `UPDATE accounts SET image = $2, updated_at = NOW() WHERE user_id = $1`
	case userssvc.ImageFieldCover:
		query = `UPDATE accounts SET cover = $2, updated_at = NOW() WHERE user_id = $1`
	default:
		return userssvc.Account{}, userssvc.ErrValidation
	}

	tag, err := r.pool.Exec(ctx, query, userID, url)
	if err != nil {
		return userssvc.Account{}, fmt.Errorf("update account image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return userssvc.Account{}, userssvc.ErrNotFound
	}

	return r.GetByUserID(ctx, userID)
}

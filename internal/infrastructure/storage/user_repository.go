package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

// UserRepository persists dashboard accounts keyed by email.
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserStore = (*UserRepository)(nil)

// NewUserRepository wires a sql.DB implementation.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Get loads one account; ports.ErrNotFound when the email is unknown.
func (r *UserRepository) Get(ctx context.Context, email string) (domain.UserAccount, error) {
	query, args, err := psql.Select("email", "name", "password_hash", "interests", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("build user query: %w", err)
	}

	var u domain.UserAccount
	var interests []string
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.Email, &u.Name, &u.PasswordHash, pq.Array(&interests), &u.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.UserAccount{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("query user: %w", err)
	}

	for _, i := range interests {
		u.Interests = append(u.Interests, domain.Department(i))
	}
	return u, nil
}

// Create inserts a new account; the email primary key rejects duplicates.
func (r *UserRepository) Create(ctx context.Context, u domain.UserAccount) error {
	interests := make([]string, 0, len(u.Interests))
	for _, i := range u.Interests {
		interests = append(interests, string(i))
	}

	query, args, err := psql.Insert("users").
		Columns("email", "name", "password_hash", "interests", "created_at").
		Values(u.Email, u.Name, u.PasswordHash, pq.Array(interests), u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build user insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateInterests replaces the subscribed departments for one account.
func (r *UserRepository) UpdateInterests(ctx context.Context, email string, interests []domain.Department) error {
	values := make([]string, 0, len(interests))
	for _, i := range interests {
		values = append(values, string(i))
	}

	query, args, err := psql.Update("users").
		Set("interests", pq.Array(values)).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build interests update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update interests: %w", err)
	}
	return nil
}

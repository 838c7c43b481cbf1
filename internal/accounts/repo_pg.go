package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, cred Credential) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		cred.ID,
		cred.Name,
		cred.Email,
		cred.PasswordHash,
		cred.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Credential, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Credential, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) scanOne(row *sql.Row) (Credential, error) {
	var cred Credential
	err := row.Scan(
		&cred.ID,
		&cred.Name,
		&cred.Email,
		&cred.PasswordHash,
		&cred.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrNotFound
	}
	if err != nil {
		return Credential{}, err
	}
	return cred, nil
}

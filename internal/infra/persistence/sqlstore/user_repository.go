package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	domuser "example.com/softuni-fest/internal/domain/user"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	_, err := r.db.exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, role_code, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, u.ID, u.Name, u.Email, u.PasswordHash, string(u.RoleCode), u.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	return r.scanOne(r.db.queryRow(ctx, `
        SELECT id, name, email, password_hash, role_code, created_at
        FROM users WHERE id = ?
    `, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.scanOne(r.db.queryRow(ctx, `
        SELECT id, name, email, password_hash, role_code, created_at
        FROM users WHERE email = ?
    `, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*domuser.User, error) {
	var u domuser.User
	var roleCode string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roleCode, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	u.RoleCode = domuser.RoleCode(roleCode)
	return &u, nil
}

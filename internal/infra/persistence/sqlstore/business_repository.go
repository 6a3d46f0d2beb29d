package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	dombusiness "example.com/softuni-fest/internal/domain/business"
)

type BusinessRepository struct {
	db *DB
}

func NewBusinessRepository(db *DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, b *dombusiness.Business) (*dombusiness.Business, error) {
	id, err := r.db.insert(ctx, `
        INSERT INTO businesses (user_id, name, description, created_at)
        VALUES (?, ?, ?, ?)
    `, b.UserID, b.Name, b.Description, b.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return nil, dombusiness.ErrBusinessAlreadyExists
		}
		return nil, err
	}
	b.ID = id
	return b, nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*dombusiness.Business, error) {
	return r.scanOne(r.db.queryRow(ctx, `
        SELECT id, user_id, name, description, created_at
        FROM businesses WHERE id = ?
    `, id))
}

func (r *BusinessRepository) GetByUserID(ctx context.Context, userID string) (*dombusiness.Business, error) {
	return r.scanOne(r.db.queryRow(ctx, `
        SELECT id, user_id, name, description, created_at
        FROM businesses WHERE user_id = ?
    `, userID))
}

func (r *BusinessRepository) scanOne(row *sql.Row) (*dombusiness.Business, error) {
	var b dombusiness.Business
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dombusiness.ErrBusinessNotFound
		}
		return nil, err
	}
	return &b, nil
}

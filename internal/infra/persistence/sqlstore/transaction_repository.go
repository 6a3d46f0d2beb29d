package sqlstore

import (
	"context"

	domtx "example.com/softuni-fest/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domtx.Transaction) (*domtx.Transaction, error) {
	id, err := r.db.insert(ctx, `
        INSERT INTO transactions (product_id, product_name, business_id, buyer_id, amount, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, t.ProductID, t.ProductName, t.BusinessID, t.BuyerID, t.Amount, t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

func (r *TransactionRepository) Count(ctx context.Context, filter domtx.Filter) (int64, error) {
	where, args := transactionWhere(filter)
	var n int64
	err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&n)
	return n, err
}

func (r *TransactionRepository) Find(ctx context.Context, filter domtx.Filter, limit, offset int) ([]*domtx.Transaction, error) {
	where, args := transactionWhere(filter)
	query := `
        SELECT id, product_id, product_name, business_id, buyer_id, amount, created_at
        FROM transactions` + where + ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domtx.Transaction
	for rows.Next() {
		var t domtx.Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.ProductName, &t.BusinessID, &t.BuyerID, &t.Amount, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func transactionWhere(f domtx.Filter) (string, []any) {
	if f.BusinessID != nil {
		return " WHERE (buyer_id = ? OR business_id = ?)", []any{f.UserID, *f.BusinessID}
	}
	return " WHERE buyer_id = ?", []any{f.UserID}
}

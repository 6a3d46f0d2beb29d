package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domproduct "example.com/softuni-fest/internal/domain/product"
	"example.com/softuni-fest/internal/pagination"
)

const productColumns = `
        SELECT p.id, p.name, p.description, p.price, p.image_url, p.business_id, b.name, p.created_at, p.updated_at
        FROM products p
        JOIN businesses b ON b.id = p.business_id
    `

var productSortColumns = map[domproduct.SortKey]string{
	domproduct.SortByID:        "p.id",
	domproduct.SortByName:      "LOWER(p.name)",
	domproduct.SortByPrice:     "p.price",
	domproduct.SortByCreatedAt: "p.created_at",
}

type ProductRepository struct {
	db  *DB
	now func() time.Time
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db, now: time.Now}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	now := r.now().UTC()
	id, err := r.db.insert(ctx, `
        INSERT INTO products (name, description, price, image_url, business_id, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, p.Name, p.Description, p.Price, nullString(p.ImageURL), p.BusinessID, now, now)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	res, err := r.db.exec(ctx, `
        UPDATE products SET name = ?, description = ?, price = ?, image_url = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Description, p.Price, nullString(p.ImageURL), r.now().UTC(), p.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.queryRow(ctx, productColumns+` WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter domproduct.Filter) (int64, error) {
	where, args := productWhere(filter)
	var n int64
	err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&n)
	return n, err
}

func (r *ProductRepository) Find(ctx context.Context, q domproduct.Query) ([]*domproduct.Product, error) {
	query, args, err := buildFindProducts(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ExistsForBusiness(ctx context.Context, businessID, productID int64) (bool, error) {
	var n int64
	err := r.db.queryRow(ctx, `
        SELECT COUNT(*) FROM products WHERE id = ? AND business_id = ?
    `, productID, businessID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func buildFindProducts(q domproduct.Query) (string, []any, error) {
	key := q.OrderBy
	if key == "" {
		key = domproduct.SortByID
	}
	column, ok := productSortColumns[key]
	if !ok {
		return "", nil, domproduct.ErrInvalidSortKey
	}
	dir := "ASC"
	if q.Direction == pagination.Descending {
		dir = "DESC"
	}

	where, args := productWhere(q.Filter)
	query := productColumns + where + fmt.Sprintf(" ORDER BY %s %s", column, dir)
	if key != domproduct.SortByID {
		query += ", p.id " + dir
	}
	if q.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, q.Offset)
	}
	return query, args, nil
}

func productWhere(f domproduct.Filter) (string, []any) {
	var clauses []string
	var args []any

	if f.BusinessID != nil {
		clauses = append(clauses, "p.business_id = ?")
		args = append(args, *f.BusinessID)
	}
	if len(f.IDs) > 0 {
		clauses = append(clauses, "p.id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + escapeLike(s) + "%"
		clauses = append(clauses, "(LOWER(p.name) LIKE ? ESCAPE '!' OR LOWER(p.description) LIKE ? ESCAPE '!')")
		args = append(args, like, like)
	}
	if f.MinPrice != nil {
		clauses = append(clauses, "p.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, "p.price <= ?")
		args = append(args, *f.MaxPrice)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike makes LIKE wildcards in s match literally. '!' is the escape
// character because backslash is itself an escape in MySQL string literals.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	var image sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &image, &p.BusinessID, &p.BusinessName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ImageURL = image.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

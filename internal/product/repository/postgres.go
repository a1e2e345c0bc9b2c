package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
)

var ErrProductNotFound = errors.New("product not found")

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{"is_active = true"}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "(category = :category OR main_category = :category)")
		args["category"] = f.Category
	}
	if f.Search != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Product
	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, err
	}
	if err := r.attachVariants(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) attachVariants(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	query, args, err := sqlx.In(`SELECT * FROM product_variants WHERE product_id IN (?)`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var variants []model.ProductVariant
	if err := r.DB.SelectContext(ctx, &variants, query, args...); err != nil {
		return err
	}
	for _, v := range variants {
		i := index[v.ProductID]
		products[i].Variants = append(products[i].Variants, v)
	}
	return nil
}

func (r *PGRepository) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	err = r.DB.SelectContext(ctx, &p.Variants, `
        SELECT * FROM product_variants WHERE product_id = $1 ORDER BY created_at
    `, productID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) GetVariantDetail(ctx context.Context, variantID string) (*dto.VariantDetail, error) {
	var d dto.VariantDetail
	err := r.DB.GetContext(ctx, &d, `
        SELECT
            v.id                            AS variant_id,
            p.id                            AS product_id,
            p.name                          AS product_name,
            COALESCE(v.size, '')            AS size,
            COALESCE(v.color, '')           AS color,
            COALESCE(v.price, p.base_price) AS unit_price
        FROM product_variants v
        JOIN products p ON p.id = v.product_id
        WHERE v.id = $1
    `, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrVariantNotFound
		}
		return nil, err
	}
	return &d, nil
}

var _ product.Repository = (*PGRepository)(nil)

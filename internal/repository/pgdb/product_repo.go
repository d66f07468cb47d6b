package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id::text, title, handle, price::text, description, fabric, fit, care, images, sizes, created_at, updated_at`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает все товары в порядке создания.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id`

	return p.queryProducts(ctx, query)
}

// GetByHandle возвращает самый старый товар с данным handle.
func (p *ProductRepo) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE handle = $1 ORDER BY created_at, id LIMIT 1`

	return p.queryProduct(ctx, query, handle)
}

func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1::uuid`

	return p.queryProduct(ctx, query, id)
}

// GetByIDs возвращает найденные товары; порядок не гарантируется.
func (p *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`

	return p.queryProducts(ctx, query, ids)
}

func (p *ProductRepo) Create(ctx context.Context, payload *domain.ProductPayload) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (title, handle, price, description, fabric, fit, care, images, sizes)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	return p.scanOne(tx.QueryRow(ctx, query,
		payload.Title,
		payload.Handle,
		payload.Price.String(),
		payload.Description,
		payload.Fabric,
		payload.Fit,
		payload.Care,
		nonNil(payload.Images),
		nonNil(payload.Sizes),
	))
}

// Update заменяет все поля товара. Отсутствующий id даёт ErrProductNotFound.
func (p *ProductRepo) Update(ctx context.Context, id string, payload *domain.ProductPayload) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products SET
			title = $2,
			handle = $3,
			price = $4::numeric,
			description = $5,
			fabric = $6,
			fit = $7,
			care = $8,
			images = $9,
			sizes = $10,
			updated_at = NOW()
		WHERE id = $1::uuid
		RETURNING ` + productColumns

	return p.scanOne(tx.QueryRow(ctx, query,
		id,
		payload.Title,
		payload.Handle,
		payload.Price.String(),
		payload.Description,
		payload.Fabric,
		payload.Fit,
		payload.Care,
		nonNil(payload.Images),
		nonNil(payload.Sizes),
	))
}

// Delete удаляет товар и возвращает удалённую запись.
func (p *ProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `DELETE FROM products WHERE id = $1::uuid RETURNING ` + productColumns

	return p.scanOne(tx.QueryRow(ctx, query, id))
}

func (p *ProductRepo) queryProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	return p.scanOne(conn(ctx, p.pool).QueryRow(ctx, query, args...))
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := conn(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products, err := p.conv.ToArrEntity(models)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

func (p *ProductRepo) scanOne(row pgx.Row) (*domain.Product, error) {
	var model converter.ProductModel
	if err := scanProduct(row, &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product, err := p.conv.ToEntity(&model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return product, nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Title, &model.Handle, &model.Price,
		&model.Description, &model.Fabric, &model.Fit, &model.Care,
		&model.Images, &model.Sizes, &model.CreatedAt, &model.UpdatedAt,
	)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

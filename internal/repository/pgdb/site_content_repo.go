package pgdb

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SiteContentRepo хранит единственный документ контента сайта под ключом domain.SiteContentKey.
type SiteContentRepo struct {
	pool *pgxpool.Pool
	conv converter.SiteContentConverter
}

func NewSiteContentRepo(pool *pgxpool.Pool, conv converter.SiteContentConverter) *SiteContentRepo {
	return &SiteContentRepo{
		pool: pool,
		conv: conv,
	}
}

// Get возвращает nil без ошибки, если документ ещё не сохранялся.
func (s *SiteContentRepo) Get(ctx context.Context) (*domain.SiteContent, error) {
	query := `SELECT content FROM site_content WHERE id = $1`

	var raw []byte
	if err := conn(ctx, s.pool).QueryRow(ctx, query, domain.SiteContentKey).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SiteContentModel
	if err := json.Unmarshal(raw, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(&model), nil
}

// Put сливает документ с сохранённым: ключи верхнего уровня заменяются присланными.
func (s *SiteContentRepo) Put(ctx context.Context, content *domain.SiteContent) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	raw, err := json.Marshal(s.conv.ToModel(content))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO site_content (id, content, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			content = site_content.content || EXCLUDED.content,
			updated_at = NOW()
	`

	if _, err := tx.Exec(ctx, query, domain.SiteContentKey, string(raw)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

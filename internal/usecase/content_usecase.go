package usecase

import (
	"context"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

// ContentUseCase читает и сохраняет редакционный контент сайта.
type ContentUseCase struct {
	contentRepo SiteContentRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	logger      logger.Logger
}

func NewContentUseCase(
	contentRepo SiteContentRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger logger.Logger,
) *ContentUseCase {
	return &ContentUseCase{
		contentRepo: contentRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetSiteContent возвращает сохранённый контент или DefaultSiteContent, если записи нет или чтение упало.
func (c *ContentUseCase) GetSiteContent(ctx context.Context) domain.SiteContent {
	const op = "ContentUseCase.GetSiteContent"

	content, err := c.contentRepo.Get(ctx)
	if err != nil {
		c.logger.Warnf("Failed to fetch site content, serving defaults: %v", e.Wrap(op, err))
		return domain.DefaultSiteContent()
	}
	if content == nil {
		return domain.DefaultSiteContent()
	}
	return *content
}

// UpdateSiteContent сохраняет контент целиком и пишет событие в outbox.
func (c *ContentUseCase) UpdateSiteContent(ctx context.Context, content *domain.SiteContent) error {
	const op = "ContentUseCase.UpdateSiteContent"

	event, err := NewSiteContentEvent(content)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = c.txManager.Do(ctx, func(ctx context.Context) error {
		if err := c.contentRepo.Put(ctx, content); err != nil {
			return err
		}
		_, err := c.outboxRepo.Create(ctx, event)
		return err
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

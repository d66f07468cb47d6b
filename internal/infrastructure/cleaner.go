package infrastructure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/rawline/pkg/jitter"
	"github.com/DRSN-tech/rawline/pkg/logger"
)

const (
	cleanupAttempts    = 3
	cleanupBaseDelay   = time.Second
	cleanupMaxDelay    = 10 * time.Second
	cleanupTaskTimeout = 30 * time.Second
)

// DeleteFunc удаляет один ассет по идентификатору.
type DeleteFunc func(ctx context.Context, key string) error

// Cleaner удаляет ассеты в фоне с экспоненциальной задержкой и jitter.
// Задачи прерываются при отмене shutdownCtx.
type Cleaner struct {
	remove      DeleteFunc
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	baseDelay   time.Duration
}

func NewCleaner(remove DeleteFunc, logger logger.Logger, shutdownCtx context.Context) *Cleaner {
	return &Cleaner{
		remove:      remove,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		baseDelay:   cleanupBaseDelay,
	}
}

// Cleanup запускает фоновую очистку указанных ключей.
func (c *Cleaner) Cleanup(keys []string) {
	if len(keys) == 0 {
		return
	}
	c.wg.Add(1)
	go c.cleanup(keys)
}

func (c *Cleaner) cleanup(keys []string) {
	defer c.wg.Done()
	const op = "Cleaner.cleanup"
	c.logger.Infof("%s: cleaning up %d assets", op, len(keys))

	ctx, cancel := context.WithTimeout(c.shutdownCtx, cleanupTaskTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := c.remove(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				c.logger.Errorf(err, "%s: giving up on asset %s", op, key)
				break
			}

			delay := jitter.ExponentialBackoff(c.baseDelay, cleanupMaxDelay, attempt, jitter.DefaultJitter)
			if err := jitter.Sleep(ctx, delay); err != nil {
				c.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (c *Cleaner) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("asset cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

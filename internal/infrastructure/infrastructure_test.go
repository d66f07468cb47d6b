package infrastructure

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func images(names ...string) []usecase.ProductImage {
	out := make([]usecase.ProductImage, 0, len(names))
	for _, n := range names {
		out = append(out, *usecase.NewProductImage([]byte(n), "image/png", int64(len(n)), n))
	}
	return out
}

func TestGetExtensionFromMIME(t *testing.T) {
	ext, err := GetExtensionFromMIME("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)

	_, err = GetExtensionFromMIME("image/gif")
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}

func TestUploadParallel_KeepsRequestOrder(t *testing.T) {
	var inFlight, peak int32
	upload := func(ctx context.Context, img usecase.ProductImage) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		// первое изображение завершается последним
		if img.Name == "a" {
			time.Sleep(20 * time.Millisecond)
		}
		atomic.AddInt32(&inFlight, -1)
		return "id-" + img.Name, nil
	}

	ids, orphans, err := UploadParallel(context.Background(), images("a", "b", "c", "d"), 2, upload)
	require.NoError(t, err)
	assert.Empty(t, orphans)
	assert.Equal(t, []string{"id-a", "id-b", "id-c", "id-d"}, ids)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestUploadParallel_ReturnsOrphansOnFailure(t *testing.T) {
	upload := func(ctx context.Context, img usecase.ProductImage) (string, error) {
		if img.Name == "b" {
			time.Sleep(50 * time.Millisecond)
			return "", errors.New("boom")
		}
		return "id-" + img.Name, nil
	}

	_, orphans, err := UploadParallel(context.Background(), images("a", "b"), 2, upload)
	require.Error(t, err)
	assert.Equal(t, []string{"id-a"}, orphans)
}

func TestUploadParallel_StopsAfterFirstError(t *testing.T) {
	var calls int32
	upload := func(ctx context.Context, img usecase.ProductImage) (string, error) {
		atomic.AddInt32(&calls, 1)
		if img.Name == "a" {
			return "", errors.New("boom")
		}
		return "id-" + img.Name, nil
	}

	ids, orphans, err := UploadParallel(context.Background(), images("a", "b", "c"), 1, upload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload a failed")
	assert.Nil(t, ids)
	assert.Empty(t, orphans)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestUploadParallel_RejectsUnsupportedMime(t *testing.T) {
	imgs := images("a")
	imgs[0].MimeType = "image/gif"

	called := false
	_, _, err := UploadParallel(context.Background(), imgs, 1, func(ctx context.Context, img usecase.ProductImage) (string, error) {
		called = true
		return "", nil
	})
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
	assert.False(t, called)
}

func TestCleaner_RetriesAndWaits(t *testing.T) {
	var (
		mu       sync.Mutex
		attempts = map[string]int{}
	)
	remove := func(ctx context.Context, key string) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[key]++
		if key == "flaky" && attempts[key] < 2 {
			return errors.New("temporary")
		}
		return nil
	}

	c := NewCleaner(remove, logger.NewNopLogger(), context.Background())
	c.baseDelay = time.Millisecond
	c.Cleanup([]string{"ok", "flaky"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.WaitForCleanup(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, attempts["ok"])
	assert.Equal(t, 2, attempts["flaky"])
}

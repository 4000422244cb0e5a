package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 記錄被刪除的 key，並可對指定 key 注入失敗
type fakeBlobStorage struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]int // key -> 剩餘失敗次數
}

func (f *fakeBlobStorage) Save(ctx context.Context, key string, r io.Reader) error { return nil }

func (f *fakeBlobStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[key] > 0 {
		f.failOn[key]--
		return errors.New("disk unavailable")
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobStorage) URL(key string) string { return "http://localhost/uploads/" + key }

func (f *fakeBlobStorage) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestCleanupWorker_DeletesPublishedKeys(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewCleanupQueue(10)
	blobStorage := &fakeBlobStorage{}

	w := worker.NewCleanupWorker(blobStorage, q)
	require.NoError(t, w.Start(ctx))

	task := &queue.CleanupTask{Keys: []string{"events/1/a.jpg", "events/1/b.jpg"}}
	require.NoError(t, q.PublishCleanup(ctx, task))

	assert.Eventually(t, func() bool {
		return len(blobStorage.deletedKeys()) == 2
	}, time.Second, 10*time.Millisecond, "Worker 沒有在時間內刪完檔案")

	assert.ElementsMatch(t, task.Keys, blobStorage.deletedKeys())
}

func TestCleanupWorker_RetriesOnPartialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	q := queue.NewCleanupQueue(10)
	// 第一批 b.jpg 失敗一次，Nack(true) 重試後整批補完
	blobStorage := &fakeBlobStorage{failOn: map[string]int{"events/2/b.jpg": 1}}

	w := worker.NewCleanupWorker(blobStorage, q)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, q.PublishCleanup(ctx, &queue.CleanupTask{Keys: []string{"events/2/a.jpg", "events/2/b.jpg"}}))

	assert.Eventually(t, func() bool {
		for _, key := range blobStorage.deletedKeys() {
			if key == "events/2/b.jpg" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "重試後仍未刪除失敗的 key")
}

package worker

import (
	"context"

	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/storage"
	"event-gallery-api/pkg/logger"

	"go.uber.org/zap"
)

// CleanupWorker 把清理佇列裡的 blob key 逐一刪除。
// 刪除活動或圖片時資料庫先行，檔案在這裡非同步收尾。
type CleanupWorker interface {
	Start(ctx context.Context) error
}

type CleanupWorkerImpl struct {
	storage storage.BlobStorage
	queue   queue.CleanupQueue
}

func NewCleanupWorker(storage storage.BlobStorage, queue queue.CleanupQueue) CleanupWorker {
	return &CleanupWorkerImpl{
		storage: storage,
		queue:   queue,
	}
}

func (w *CleanupWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeCleanups(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			failed := 0
			for _, key := range msg.Data.Keys {
				if err := w.storage.Delete(ctx, key); err != nil {
					log.Warn("delete blob failed", zap.String("key", key), zap.Error(err))
					failed++
				}
			}

			if failed > 0 {
				// 部分失敗就整批重試；Delete 對已不存在的 key 是 no-op，重跑安全
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}

package queue

import (
	"context"
)

// CleanupTask 一批待刪除的 blob key，來自刪除圖片或刪除整個活動
type CleanupTask struct {
	Keys []string `json:"keys"`
}

type Delivery struct {
	Data *CleanupTask
	Ack  func()
	Nack func(requeue bool)
}

type CleanupQueue interface {
	// 發送清理任務到隊列
	PublishCleanup(ctx context.Context, task *CleanupTask) error
	// 訂閱清理任務隊列
	SubscribeCleanups(ctx context.Context) (<-chan Delivery, error)
}

type CleanupQueueImpl struct {
	// 使用 Go channel 模擬 MQ，單機部署與測試用
	ch chan *CleanupTask
}

func NewCleanupQueue(bufferSize int) CleanupQueue {
	return &CleanupQueueImpl{
		ch: make(chan *CleanupTask, bufferSize),
	}
}

func (q *CleanupQueueImpl) PublishCleanup(ctx context.Context, task *CleanupTask) error {
	q.ch <- task
	return nil
}

func (q *CleanupQueueImpl) SubscribeCleanups(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case task, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: task,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- task // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}

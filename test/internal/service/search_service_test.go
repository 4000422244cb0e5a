package service

import (
	"context"
	"testing"

	"event-gallery-api/internal/access"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("Failed - empty query", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := newSearchService().Search(ctx, access.Anonymous(), "", "all", 20)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - unknown type", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		_, err := newSearchService().Search(ctx, access.Anonymous(), "wedding", "nope", 20)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success - visibility follows the subject", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		svc := newSearchService()
		creatorID := createTestUser(t, "Alice", "alice@example.com")
		memberID := createTestUser(t, "Bob", "bob@example.com")

		publicID := createTestEvent(t, creatorID, "Wedding Public", "PUBL0001", false, nil)
		privateID := createTestEvent(t, creatorID, "Wedding Private", "PRIV0001", true, nil)
		createTestParticipant(t, privateID, memberID)

		createTestImage(t, publicID, creatorID, "events/1/a.jpg")
		createTestImage(t, privateID, creatorID, "events/2/b.jpg")
		_, err := testDB.Exec(ctx, `UPDATE images SET title = 'Wedding cake'`)
		require.NoError(t, err)

		// 匿名只搜得到公開活動與其圖片
		results, err := svc.Search(ctx, access.Anonymous(), "Wedding", "all", 20)
		require.NoError(t, err)
		require.Len(t, results.Events, 1)
		assert.Equal(t, "Wedding Public", results.Events[0].Name)
		assert.Len(t, results.Images, 1)

		// 參加者搜得到私人活動
		results, err = svc.Search(ctx, access.User(memberID), "Wedding", "all", 20)
		require.NoError(t, err)
		assert.Len(t, results.Events, 2)
		assert.Len(t, results.Images, 2)

		// 建立者不靠參加者資料列也搜得到
		results, err = svc.Search(ctx, access.User(creatorID), "Wedding", "events", 20)
		require.NoError(t, err)
		assert.Len(t, results.Events, 2)
	})

	t.Run("Success - user search matches by name", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		svc := newSearchService()
		createTestUser(t, "Alice Wonder", "alice@example.com")
		createTestUser(t, "Bob Wonder", "bob@example.com")
		createTestUser(t, "Carol", "carol@example.com")

		results, err := svc.Search(ctx, access.Anonymous(), "Wonder", "users", 20)
		require.NoError(t, err)
		require.Len(t, results.Users, 2)
		assert.Equal(t, "Alice Wonder", results.Users[0].Name)
		assert.Equal(t, 2, results.Total)
	})

	t.Run("Success - type narrows scope", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		svc := newSearchService()
		creatorID := createTestUser(t, "Wedding Planner", "planner@example.com")
		createTestEvent(t, creatorID, "Wedding", "PUBL0001", false, nil)

		results, err := svc.Search(ctx, access.Anonymous(), "Wedding", "events", 20)
		require.NoError(t, err)
		assert.Len(t, results.Events, 1)
		assert.Empty(t, results.Users)
		assert.Equal(t, 1, results.Total)
	})
}

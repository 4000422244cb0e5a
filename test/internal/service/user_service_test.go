package service

import (
	"context"
	"testing"

	"event-gallery-api/internal/access"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newUserService()
	userID := createTestUser(t, "Alice", "alice@example.com")

	user, err := svc.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_Statistics(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newUserService()
	aliceID := createTestUser(t, "Alice", "alice@example.com")
	bobID := createTestUser(t, "Bob", "bob@example.com")

	ownEvent := createTestEvent(t, aliceID, "Mine", "MINE0001", false, nil)
	otherEvent := createTestEvent(t, bobID, "Theirs", "THRS0001", false, nil)
	createTestParticipant(t, ownEvent, aliceID)
	createTestParticipant(t, otherEvent, aliceID)

	imageID := createTestImage(t, ownEvent, aliceID, "events/1/a.jpg")
	createTestLike(t, imageID, aliceID)

	stats, err := svc.Statistics(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stats.Name)
	assert.Equal(t, 1, stats.EventsCreated)
	assert.Equal(t, 2, stats.EventsJoined)
	assert.Equal(t, 1, stats.ImagesUploaded)
	assert.Equal(t, 1, stats.ImagesLiked)

	_, err = svc.Statistics(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_Events(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newUserService()
	aliceID := createTestUser(t, "Alice", "alice@example.com")
	strangerID := createTestUser(t, "Eve", "eve@example.com")

	createTestEvent(t, aliceID, "Public Own", "PUBL0001", false, nil)
	privateOwn := createTestEvent(t, aliceID, "Private Own", "PRIV0001", true, nil)

	// 別人只看得到 Alice 的公開足跡
	events, err := svc.Events(ctx, access.User(strangerID), aliceID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Public Own", events[0].Name)

	// 匿名一樣
	events, err = svc.Events(ctx, access.Anonymous(), aliceID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// 本人看得到自己的私人活動
	events, err = svc.Events(ctx, access.User(aliceID), aliceID)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// 私人活動的參加者也看得到它出現在 Alice 的足跡裡
	memberID := createTestUser(t, "Bob", "bob@example.com")
	createTestParticipant(t, privateOwn, memberID)
	events, err = svc.Events(ctx, access.User(memberID), aliceID)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = svc.Events(ctx, access.Anonymous(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ImagesAndLikedImages(t *testing.T) {
	ctx := context.Background()
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newUserService()
	aliceID := createTestUser(t, "Alice", "alice@example.com")
	strangerID := createTestUser(t, "Eve", "eve@example.com")

	publicEvent := createTestEvent(t, aliceID, "Public", "PUBL0001", false, nil)
	privateEvent := createTestEvent(t, aliceID, "Private", "PRIV0001", true, nil)

	publicImage := createTestImage(t, publicEvent, aliceID, "events/1/a.jpg")
	privateImage := createTestImage(t, privateEvent, aliceID, "events/2/b.jpg")
	createTestLike(t, publicImage, aliceID)
	createTestLike(t, privateImage, aliceID)

	// 上傳列表跟著查詢主體的可見範圍
	images, err := svc.Images(ctx, access.User(strangerID), aliceID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, publicImage, images[0].ImageID)

	images, err = svc.Images(ctx, access.User(aliceID), aliceID)
	require.NoError(t, err)
	assert.Len(t, images, 2)

	// 按過讚的列表也一樣
	liked, err := svc.LikedImages(ctx, access.Anonymous(), aliceID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, publicImage, liked[0].ImageID)

	liked, err = svc.LikedImages(ctx, access.User(aliceID), aliceID)
	require.NoError(t, err)
	assert.Len(t, liked, 2)
}

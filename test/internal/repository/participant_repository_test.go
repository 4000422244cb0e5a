package repository

import (
	"context"
	"testing"

	"event-gallery-api/internal/repository"
	apperrors "event-gallery-api/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertParticipant(t *testing.T, repo repository.ParticipantRepository, eventID, userID int) error {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	if _, err := repo.Insert(ctx, tx, eventID, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func TestParticipantRepository_Insert(t *testing.T) {
	repo := repository.NewParticipantRepository(getTestDB())

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		creatorID := createTestUser(t, "Alice", "alice@example.com")
		memberID := createTestUser(t, "Bob", "bob@example.com")
		eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)

		require.NoError(t, insertParticipant(t, repo, eventID, memberID))
		assertRowCount(t, "event_participants", 1)
	})

	t.Run("Failed - Duplicate", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		creatorID := createTestUser(t, "Alice", "alice@example.com")
		memberID := createTestUser(t, "Bob", "bob@example.com")
		eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)
		createTestParticipant(t, eventID, memberID)

		err := insertParticipant(t, repo, eventID, memberID)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyParticipant)
	})
}

func TestParticipantRepository_Delete(t *testing.T) {
	repo := repository.NewParticipantRepository(getTestDB())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		creatorID := createTestUser(t, "Alice", "alice@example.com")
		memberID := createTestUser(t, "Bob", "bob@example.com")
		eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)
		createTestParticipant(t, eventID, memberID)

		require.NoError(t, repo.Delete(ctx, eventID, memberID))
		assertRowCount(t, "event_participants", 0)
	})

	t.Run("Failed - NotParticipant", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		creatorID := createTestUser(t, "Alice", "alice@example.com")
		memberID := createTestUser(t, "Bob", "bob@example.com")
		eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)

		err := repo.Delete(ctx, eventID, memberID)
		assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
	})
}

func TestParticipantRepository_ExistsAndCount(t *testing.T) {
	repo := repository.NewParticipantRepository(getTestDB())
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	creatorID := createTestUser(t, "Alice", "alice@example.com")
	bobID := createTestUser(t, "Bob", "bob@example.com")
	carolID := createTestUser(t, "Carol", "carol@example.com")
	eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)
	createTestParticipant(t, eventID, creatorID)
	createTestParticipant(t, eventID, bobID)

	exists, err := repo.Exists(ctx, eventID, bobID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, eventID, carolID)
	require.NoError(t, err)
	assert.False(t, exists)

	count, err := repo.Count(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestParticipantRepository_ListByEventID(t *testing.T) {
	repo := repository.NewParticipantRepository(getTestDB())
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	creatorID := createTestUser(t, "Alice", "alice@example.com")
	bobID := createTestUser(t, "Bob", "bob@example.com")
	eventID := createTestEvent(t, creatorID, "Picnic", "PICN0001", false, nil)
	createTestParticipant(t, eventID, creatorID)
	createTestParticipant(t, eventID, bobID)

	participants, err := repo.ListByEventID(ctx, eventID)

	require.NoError(t, err)
	require.Len(t, participants, 2)
	// joined_at 升冪，同時間以 id 穩定排序
	assert.Equal(t, creatorID, participants[0].UserID)
	assert.Equal(t, bobID, participants[1].UserID)
	require.NotNil(t, participants[0].User)
	assert.Equal(t, "Alice", participants[0].User.Name)
}

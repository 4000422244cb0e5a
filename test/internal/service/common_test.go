package service

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"event-gallery-api/config"
	"event-gallery-api/internal/access"
	"event-gallery-api/internal/database"
	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/repository"
	"event-gallery-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running service tests...")

	code := m.Run()

	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx, "TRUNCATE comments, image_likes, images, event_participants, events, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

// newEventService 組好 DB 版的 event service；stats cache 留空走資料庫
func newEventService() service.EventService {
	db := getTestDB()
	eventRepo := repository.NewEventRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	gate := access.NewGate(participantRepo)
	return service.NewEventService(db, eventRepo, participantRepo, userRepo, imageRepo, gate, nil, queue.NewCleanupQueue(16))
}

func createTestUser(t *testing.T, name, email string) int {
	t.Helper()
	ctx := context.Background()

	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int
	err := testDB.QueryRow(ctx, query, name, email).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

func createTestEvent(t *testing.T, creatorID int, name, inviteCode string, isPrivate bool, maxParticipants *int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	eventID := uuid.New()
	query := `
		INSERT INTO events (event_id, name, date, is_private, max_participants, invite_code, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := testDB.Exec(ctx, query,
		eventID, name, time.Now().Add(24*time.Hour), isPrivate, maxParticipants, inviteCode, creatorID)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID
}

func internalEventID(t *testing.T, eventID uuid.UUID) int {
	t.Helper()

	var id int
	err := testDB.QueryRow(context.Background(),
		`SELECT id FROM events WHERE event_id = $1`, eventID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to resolve event id: %v", err)
	}
	return id
}

func createTestParticipant(t *testing.T, eventID uuid.UUID, userID int) {
	t.Helper()

	_, err := testDB.Exec(context.Background(),
		`INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`,
		internalEventID(t, eventID), userID)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
}

func createTestImage(t *testing.T, eventID uuid.UUID, userID int, imageKey string) uuid.UUID {
	t.Helper()

	imageID := uuid.New()
	_, err := testDB.Exec(context.Background(),
		`INSERT INTO images (image_id, event_id, user_id, image_key) VALUES ($1, $2, $3, $4)`,
		imageID, internalEventID(t, eventID), userID, imageKey)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	return imageID
}

func internalImageID(t *testing.T, imageID uuid.UUID) int {
	t.Helper()

	var id int
	err := testDB.QueryRow(context.Background(),
		`SELECT id FROM images WHERE image_id = $1`, imageID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to resolve image id: %v", err)
	}
	return id
}

func createTestLike(t *testing.T, imageID uuid.UUID, userID int) {
	t.Helper()

	_, err := testDB.Exec(context.Background(),
		`INSERT INTO image_likes (image_id, user_id) VALUES ($1, $2)`,
		internalImageID(t, imageID), userID)
	if err != nil {
		t.Fatalf("Failed to create test like: %v", err)
	}
}

func createTestComment(t *testing.T, imageID uuid.UUID, userID int, content string) {
	t.Helper()

	_, err := testDB.Exec(context.Background(),
		`INSERT INTO comments (image_id, user_id, content) VALUES ($1, $2, $3)`,
		internalImageID(t, imageID), userID, content)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
}

func newSearchService() service.SearchService {
	db := getTestDB()
	return service.NewSearchService(
		repository.NewEventRepository(db),
		repository.NewImageRepository(db),
		repository.NewUserRepository(db),
	)
}

func newGalleryService() service.GalleryService {
	db := getTestDB()
	return service.NewGalleryService(
		repository.NewImageRepository(db),
		repository.NewGalleryRepository(db),
	)
}

func newUserService() service.UserService {
	db := getTestDB()
	return service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewEventRepository(db),
		repository.NewImageRepository(db),
	)
}

package service

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Vote{},
		&model.Report{},
		&model.IPRegister{},
		&model.Notification{},
	))

	return db
}

type testEnv struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	ipRepo           *repository.IPRegisterRepository
	videoRepo        *repository.VideoRepository
	commentRepo      *repository.CommentRepository
	voteRepo         *repository.VoteRepository
	reportRepo       *repository.ReportRepository
	notificationRepo *repository.NotificationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)
	return &testEnv{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		ipRepo:           repository.NewIPRegisterRepository(db),
		videoRepo:        repository.NewVideoRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		voteRepo:         repository.NewVoteRepository(db),
		reportRepo:       repository.NewReportRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		UserName:    username,
		DisplayName: username,
		Email:       username + "@example.com",
		Password:    "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		Role:        role,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createVideo(t *testing.T, authorID int64, title string) *model.Video {
	t.Helper()
	video := &model.Video{
		AuthorID:    authorID,
		Title:       title,
		Status:      model.VideoStatusPublished,
		VideoObject: "obj/video.mp4",
		CoverObject: "obj/cover.jpg",
	}
	require.NoError(t, e.videoRepo.Create(video))
	return video
}

// fakeStore records uploads and removals in memory.
type fakeStore struct {
	uploaded   []string
	removed    []string
	failUpload bool
}

func (f *fakeStore) Upload(_ context.Context, bucket, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.failUpload {
		return "", errFakeStore
	}
	_, _ = io.Copy(io.Discard, reader)
	f.uploaded = append(f.uploaded, bucket+"/"+objectName)
	return objectName, nil
}

func (f *fakeStore) Remove(_ context.Context, bucket, objectName string) error {
	if objectName != "" {
		f.removed = append(f.removed, bucket+"/"+objectName)
	}
	return nil
}

func (f *fakeStore) PublicURL(bucket, objectName string) string {
	return "http://store.local/" + bucket + "/" + objectName
}

var errFakeStore = errors.New("storage unavailable")

// fakePublisher collects events instead of writing to Kafka.
type fakePublisher struct {
	events []*infraKafka.NotificationEvent
}

func (f *fakePublisher) Publish(_ context.Context, event *infraKafka.NotificationEvent) error {
	f.events = append(f.events, event)
	return nil
}

// fakeCaptcha approves or rejects every token.
type fakeCaptcha struct {
	err error
}

func (f *fakeCaptcha) Verify(_ context.Context, _, _ string) error {
	return f.err
}

// fakeDeduper answers a fixed decision.
type fakeDeduper struct {
	count bool
}

func (f *fakeDeduper) ShouldCount(_ context.Context, _ int64, _ string) bool {
	return f.count
}

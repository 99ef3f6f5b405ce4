package service

import (
	"context"
	"strings"
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVideoService(env *testEnv, store ObjectStore, deduper ViewDeduper) *VideoService {
	return NewVideoService(env.videoRepo, env.userRepo, store, deduper, nil)
}

func TestUploadStoresObjectsAndRow(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{}
	svc := newVideoService(env, store, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)

	media := &UploadFile{
		Reader:      strings.NewReader("fake video bytes"),
		Size:        16,
		Format:      "mp4",
		ContentType: "video/mp4",
	}
	cover := &UploadFile{
		Reader:      strings.NewReader("fake cover bytes"),
		Size:        16,
		Format:      "jpg",
		ContentType: "image/jpeg",
	}

	info, err := svc.Upload(author.ID, &dto.VideoUploadRequest{Title: "my cat"}, media, cover)
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusPublished, info.Status)
	assert.NotEmpty(t, info.PlayURL)
	assert.NotEmpty(t, info.CoverURL)
	assert.Len(t, store.uploaded, 2)
}

func TestUploadRollsBackOnStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{failUpload: true}
	svc := newVideoService(env, store, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)

	media := &UploadFile{Reader: strings.NewReader("x"), Size: 1, Format: "mp4", ContentType: "video/mp4"}
	_, err := svc.Upload(author.ID, &dto.VideoUploadRequest{Title: "doomed"}, media, nil)
	require.Error(t, err)

	// No orphaned row.
	var count int64
	require.NoError(t, env.db.Model(&model.Video{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSoftDeleteKeepsRowAndObjects(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{}
	svc := newVideoService(env, store, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "mine")

	require.NoError(t, svc.SoftDelete(video.ID, author.ID))

	// Hidden from the read path.
	_, err := env.videoRepo.GetByID(video.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The row stays, marked deleted, and no object was removed.
	row, err := env.videoRepo.GetByIDIncludeDeleted(video.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusDeleted, row.Status)
	assert.Empty(t, store.removed)
}

func TestSoftDeleteOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env, &fakeStore{}, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)
	stranger := env.createUser(t, "stranger", model.RoleUser)
	mod := env.createUser(t, "mod", model.RoleModerator)
	video := env.createVideo(t, author.ID, "mine")

	assert.ErrorIs(t, svc.SoftDelete(video.ID, stranger.ID), ErrVideoNoPermission)

	// Moderators do not soft-delete either; they purge.
	assert.ErrorIs(t, svc.SoftDelete(video.ID, mod.ID), ErrVideoNoPermission)

	assert.NoError(t, svc.SoftDelete(video.ID, author.ID))
}

func TestViewCountDeduped(t *testing.T) {
	env := newTestEnv(t)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "watched")
	ctx := context.Background()

	// Deduper says no: repeat view does not count.
	svc := newVideoService(env, &fakeStore{}, &fakeDeduper{count: false})
	info, err := svc.GetDetail(ctx, video.ID, "viewer-a")
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.ViewCount)

	// Deduper says yes: the view counts.
	svc = newVideoService(env, &fakeStore{}, &fakeDeduper{count: true})
	info, err = svc.GetDetail(ctx, video.ID, "viewer-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.ViewCount)
}

func TestFeedExcludesSoftDeleted(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env, &fakeStore{}, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)
	env.createVideo(t, author.ID, "visible")
	hidden := env.createVideo(t, author.ID, "hidden")
	require.NoError(t, svc.SoftDelete(hidden.ID, author.ID))

	data, err := svc.GetFeed(1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "visible", data.Videos[0].Title)
}

func TestUpdateVideoMetadata(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env, &fakeStore{}, &fakeDeduper{})

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "old title")

	title := "new title"
	info, err := svc.Update(video.ID, author.ID, &dto.VideoUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", info.Title)

	_, err = svc.Update(video.ID, author.ID, &dto.VideoUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

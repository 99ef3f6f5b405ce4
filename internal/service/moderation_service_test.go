package service

import (
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModerationService(env *testEnv, store ObjectStore) *ModerationService {
	return NewModerationService(env.videoRepo, env.userRepo, env.commentRepo, env.voteRepo, store, nil)
}

func TestPurgeVideoCascade(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{}
	svc := newModerationService(env, store)

	author := env.createUser(t, "author", model.RoleUser)
	viewer := env.createUser(t, "viewer", model.RoleUser)
	mod := env.createUser(t, "mod", model.RoleModerator)
	video := env.createVideo(t, author.ID, "bad video")

	require.NoError(t, env.commentRepo.Create(&model.Comment{
		UserID: viewer.ID, VideoID: video.ID, Content: "first",
	}))
	_, _, _, err := env.voteRepo.Apply(viewer.ID, video.ID, model.VoteLike)
	require.NoError(t, err)

	require.NoError(t, svc.PurgeVideo(video.ID, mod.ID))

	// The row is gone for good, storage objects removed, children deleted.
	_, err = env.videoRepo.GetByIDIncludeDeleted(video.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Len(t, store.removed, 2)

	var comments, votes int64
	require.NoError(t, env.db.Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&comments).Error)
	require.NoError(t, env.db.Model(&model.Vote{}).Where("video_id = ?", video.ID).Count(&votes).Error)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), votes)
}

func TestPurgeRequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	svc := newModerationService(env, &fakeStore{})

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	// Even the owner cannot purge; that path is soft delete.
	assert.ErrorIs(t, svc.PurgeVideo(video.ID, author.ID), ErrNoPermission)
}

func TestPurgeReachesSoftDeleted(t *testing.T) {
	env := newTestEnv(t)
	svc := newModerationService(env, &fakeStore{})

	author := env.createUser(t, "author", model.RoleUser)
	mod := env.createUser(t, "mod", model.RoleModerator)
	video := env.createVideo(t, author.ID, "hidden but reported")
	require.NoError(t, env.videoRepo.SoftDelete(video.ID))

	require.NoError(t, svc.PurgeVideo(video.ID, mod.ID))

	_, err := env.videoRepo.GetByIDIncludeDeleted(video.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBanCascade(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{}
	svc := newModerationService(env, store)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	target := env.createUser(t, "troll", model.RoleUser)

	v1 := env.createVideo(t, target.ID, "one")
	v2 := env.createVideo(t, target.ID, "two")
	require.NoError(t, env.videoRepo.SoftDelete(v2.ID))

	require.NoError(t, svc.BanUser(target.ID, admin.ID))

	// Flag set and handle replaced with the shared placeholder.
	banned, err := env.userRepo.GetByID(target.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.Equal(t, model.BannedHandle, banned.UserName)

	// Every owned video is gone, soft-deleted ones included.
	for _, id := range []int64{v1.ID, v2.ID} {
		_, err := env.videoRepo.GetByIDIncludeDeleted(id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}

	// The original handle is free for a new registration.
	exists, err := env.userRepo.ExistsByUsername("troll")
	require.NoError(t, err)
	assert.False(t, exists)

	// Banning twice is refused.
	assert.ErrorIs(t, svc.BanUser(target.ID, admin.ID), ErrAlreadyBanned)
}

func TestBanRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := newModerationService(env, &fakeStore{})

	mod := env.createUser(t, "mod", model.RoleModerator)
	target := env.createUser(t, "target", model.RoleUser)

	assert.ErrorIs(t, svc.BanUser(target.ID, mod.ID), ErrNoPermission)
}

func TestUnbanKeepsContentGone(t *testing.T) {
	env := newTestEnv(t)
	svc := newModerationService(env, &fakeStore{})

	admin := env.createUser(t, "admin", model.RoleAdmin)
	target := env.createUser(t, "troll", model.RoleUser)
	video := env.createVideo(t, target.ID, "gone forever")

	require.NoError(t, svc.BanUser(target.ID, admin.ID))
	require.NoError(t, svc.UnbanUser(target.ID, admin.ID))

	restored, err := env.userRepo.GetByID(target.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsBanned)
	// Neither the handle nor the purged content comes back.
	assert.Equal(t, model.BannedHandle, restored.UserName)
	_, err = env.videoRepo.GetByIDIncludeDeleted(video.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.UnbanUser(target.ID, admin.ID), ErrNotBanned)
}

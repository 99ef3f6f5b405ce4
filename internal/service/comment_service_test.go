package service

import (
	"strings"
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(env *testEnv, events EventPublisher) *CommentService {
	return NewCommentService(env.commentRepo, env.videoRepo, env.userRepo, events)
}

func TestCommentLengthBoundary(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleModerator)
	video := env.createVideo(t, author.ID, "v")

	// Exactly at the limit passes.
	atLimit := strings.Repeat("a", model.MaxCommentLength)
	info, err := svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{Content: atLimit})
	require.NoError(t, err)
	assert.Equal(t, atLimit, info.Content)

	// One over fails.
	_, err = svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{
		Content: strings.Repeat("a", model.MaxCommentLength+1),
	})
	assert.ErrorIs(t, err, ErrCommentTooLong)

	// The limit counts runes, not bytes.
	multibyte := strings.Repeat("猫", model.MaxCommentLength)
	_, err = svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{Content: multibyte})
	assert.NoError(t, err)
}

func TestCommentRateLimitStandardTier(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleUser)
	commenter := env.createUser(t, "commenter", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	for i := 0; i < 2; i++ {
		_, err := svc.Create(commenter.ID, video.ID, &dto.CommentCreateRequest{Content: "hi"})
		require.NoError(t, err)
	}

	_, err := svc.Create(commenter.ID, video.ID, &dto.CommentCreateRequest{Content: "third"})
	assert.ErrorIs(t, err, ErrCommentRateLimited)
}

func TestCommentRateLimitVerifiedTier(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	verified := env.createUser(t, "verified", model.RoleUser)
	_, err := env.userRepo.Update(verified.ID, map[string]interface{}{"is_verified": true})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := svc.Create(verified.ID, video.ID, &dto.CommentCreateRequest{Content: "hi"})
		require.NoError(t, err)
	}

	_, err = svc.Create(verified.ID, video.ID, &dto.CommentCreateRequest{Content: "over"})
	assert.ErrorIs(t, err, ErrCommentRateLimited)
}

func TestCommentRateLimitStaffUnbounded(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")
	mod := env.createUser(t, "mod", model.RoleModerator)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(mod.ID, video.ID, &dto.CommentCreateRequest{Content: "mod note"})
		require.NoError(t, err)
	}
}

func TestCommentReplyDepth(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleModerator)
	video := env.createVideo(t, author.ID, "v")
	other := env.createVideo(t, author.ID, "other")

	top, err := svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{Content: "top"})
	require.NoError(t, err)

	reply, err := svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{
		Content: "reply", ParentID: &top.ID,
	})
	require.NoError(t, err)

	// A reply cannot be replied to.
	_, err = svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{
		Content: "too deep", ParentID: &reply.ID,
	})
	assert.ErrorIs(t, err, ErrReplyTooDeep)

	// The parent must live on the same video.
	_, err = svc.Create(author.ID, other.ID, &dto.CommentCreateRequest{
		Content: "wrong video", ParentID: &top.ID,
	})
	assert.ErrorIs(t, err, ErrParentVideoMismatch)
}

func TestCommentNotifications(t *testing.T) {
	env := newTestEnv(t)
	events := &fakePublisher{}
	svc := newCommentService(env, events)

	author := env.createUser(t, "author", model.RoleUser)
	commenter := env.createUser(t, "commenter", model.RoleModerator)
	video := env.createVideo(t, author.ID, "v")

	top, err := svc.Create(commenter.ID, video.ID, &dto.CommentCreateRequest{Content: "nice"})
	require.NoError(t, err)
	require.Len(t, events.events, 1)
	assert.Equal(t, author.ID, events.events[0].RecipientID)
	assert.Equal(t, model.NotificationVideoComment, events.events[0].Type)

	// Replying to your own comment does not notify yourself.
	_, err = svc.Create(commenter.ID, video.ID, &dto.CommentCreateRequest{
		Content: "self reply", ParentID: &top.ID,
	})
	require.NoError(t, err)
	assert.Len(t, events.events, 1)

	// A reply from someone else notifies the parent author.
	_, err = svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{
		Content: "thanks", ParentID: &top.ID,
	})
	require.NoError(t, err)
	require.Len(t, events.events, 2)
	assert.Equal(t, commenter.ID, events.events[1].RecipientID)
	assert.Equal(t, model.NotificationCommentReply, events.events[1].Type)
}

func TestCommentDeletePermissions(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleUser)
	commenter := env.createUser(t, "commenter", model.RoleUser)
	stranger := env.createUser(t, "stranger", model.RoleUser)
	mod := env.createUser(t, "mod", model.RoleModerator)
	video := env.createVideo(t, author.ID, "v")

	post := func() int64 {
		c := &model.Comment{UserID: commenter.ID, VideoID: video.ID, Content: "x"}
		require.NoError(t, env.commentRepo.Create(c))
		return c.ID
	}

	// A stranger cannot delete.
	id := post()
	assert.ErrorIs(t, svc.Delete(id, stranger.ID), ErrCommentNoPermission)

	// The comment author can.
	assert.NoError(t, svc.Delete(id, commenter.ID))

	// The video owner can.
	assert.NoError(t, svc.Delete(post(), author.ID))

	// Staff can.
	assert.NoError(t, svc.Delete(post(), mod.ID))
}

func TestCommentCountMaintained(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleModerator)
	video := env.createVideo(t, author.ID, "v")

	info, err := svc.Create(author.ID, video.ID, &dto.CommentCreateRequest{Content: "one"})
	require.NoError(t, err)

	stored, err := env.videoRepo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.CommentCount)

	require.NoError(t, svc.Delete(info.ID, author.ID))

	stored, err = env.videoRepo.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.CommentCount)
}

func TestBannedUserCannotComment(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env, nil)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	banned := env.createUser(t, "banned", model.RoleUser)
	_, err := env.userRepo.Update(banned.ID, map[string]interface{}{"is_banned": true})
	require.NoError(t, err)

	_, err = svc.Create(banned.ID, video.ID, &dto.CommentCreateRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrUserBanned)
}

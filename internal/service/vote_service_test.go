package service

import (
	"testing"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteStateMachine(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVoteService(env.voteRepo, env.videoRepo)

	author := env.createUser(t, "author", model.RoleUser)
	viewer := env.createUser(t, "viewer", model.RoleUser)
	video := env.createVideo(t, author.ID, "first upload")

	// New like.
	data, err := svc.Vote(viewer.ID, video.ID, model.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, model.VoteLike, data.Vote)
	assert.Equal(t, int64(1), data.LikeCount)
	assert.Equal(t, int64(0), data.DislikeCount)

	// Same choice again toggles it off.
	data, err = svc.Vote(viewer.ID, video.ID, model.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, "", data.Vote)
	assert.Equal(t, int64(0), data.LikeCount)

	// Like then switch to dislike.
	_, err = svc.Vote(viewer.ID, video.ID, model.VoteLike)
	require.NoError(t, err)
	data, err = svc.Vote(viewer.ID, video.ID, model.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, model.VoteDislike, data.Vote)
	assert.Equal(t, int64(0), data.LikeCount)
	assert.Equal(t, int64(1), data.DislikeCount)

	// Never more than one row per (account, video).
	var rows int64
	require.NoError(t, env.db.Model(&model.Vote{}).
		Where("user_id = ? AND video_id = ?", viewer.ID, video.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestVoteCountersMatchRows(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVoteService(env.voteRepo, env.videoRepo)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "counted")

	likers := []*model.User{
		env.createUser(t, "alice", model.RoleUser),
		env.createUser(t, "bob", model.RoleUser),
		env.createUser(t, "carol", model.RoleUser),
	}
	for _, u := range likers {
		_, err := svc.Vote(u.ID, video.ID, model.VoteLike)
		require.NoError(t, err)
	}
	disliker := env.createUser(t, "dave", model.RoleUser)
	_, err := svc.Vote(disliker.ID, video.ID, model.VoteDislike)
	require.NoError(t, err)

	// One liker cancels.
	_, err = svc.Vote(likers[0].ID, video.ID, model.VoteLike)
	require.NoError(t, err)

	stored, err := env.videoRepo.GetByID(video.ID)
	require.NoError(t, err)

	likeRows, err := env.voteRepo.CountByVideo(video.ID, model.VoteLike)
	require.NoError(t, err)
	dislikeRows, err := env.voteRepo.CountByVideo(video.ID, model.VoteDislike)
	require.NoError(t, err)

	assert.Equal(t, likeRows, stored.LikeCount)
	assert.Equal(t, dislikeRows, stored.DislikeCount)
	assert.Equal(t, int64(2), stored.LikeCount)
	assert.Equal(t, int64(1), stored.DislikeCount)
}

func TestVoteValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVoteService(env.voteRepo, env.videoRepo)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	_, err := svc.Vote(author.ID, video.ID, "love")
	assert.ErrorIs(t, err, ErrInvalidVoteType)

	_, err = svc.Vote(author.ID, 9999, model.VoteLike)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVoteStatusForNonVoter(t *testing.T) {
	env := newTestEnv(t)
	svc := NewVoteService(env.voteRepo, env.videoRepo)

	author := env.createUser(t, "author", model.RoleUser)
	video := env.createVideo(t, author.ID, "v")

	data, err := svc.GetStatus(author.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "", data.Vote)
	assert.Equal(t, int64(0), data.LikeCount)
}

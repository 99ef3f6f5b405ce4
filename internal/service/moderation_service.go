package service

import (
	"context"
	"errors"
	"time"

	infraMinio "github.com/ramdanolii14/nyantube-sub000/internal/infra/minio"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/policy"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAlreadyBanned = errors.New("account is already banned")
	ErrNotBanned     = errors.New("account is not banned")
)

type ModerationService struct {
	videoRepo   *repository.VideoRepository
	userRepo    *repository.UserRepository
	commentRepo *repository.CommentRepository
	voteRepo    *repository.VoteRepository
	store       ObjectStore
	indexer     SearchIndexer
}

func NewModerationService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, commentRepo *repository.CommentRepository, voteRepo *repository.VoteRepository, store ObjectStore, indexer SearchIndexer) *ModerationService {
	return &ModerationService{
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		store:       store,
		indexer:     indexer,
	}
}

// PurgeVideo removes a video for good: storage objects, comments, votes, then
// the row itself. Staff only. Soft-deleted videos can still be purged.
func (s *ModerationService) PurgeVideo(videoID, actorID int64) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := policy.Authorize(actor, policy.ActionVideoPurge, policy.Resource{}); err != nil {
		return ErrNoPermission
	}

	video, err := s.videoRepo.GetByIDIncludeDeleted(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	return s.purge(video)
}

// purge does the actual cascade for one video. Storage removal failures are
// logged but do not stop the row cleanup; a dangling object is cheaper than a
// dangling record.
func (s *ModerationService) purge(video *model.Video) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Remove(ctx, infraMinio.VideoBucket, video.VideoObject); err != nil {
			logger.Warn("Failed to remove video object during purge",
				zap.Int64("video_id", video.ID), zap.Error(err))
		}
		if err := s.store.Remove(ctx, infraMinio.CoverBucket, video.CoverObject); err != nil {
			logger.Warn("Failed to remove thumbnail during purge",
				zap.Int64("video_id", video.ID), zap.Error(err))
		}
	}

	if err := s.commentRepo.DeleteByVideo(video.ID); err != nil {
		return err
	}
	if err := s.voteRepo.DeleteByVideo(video.ID); err != nil {
		return err
	}
	if err := s.videoRepo.HardDelete(video.ID); err != nil {
		return err
	}

	if s.indexer != nil {
		_ = s.indexer.RemoveVideo(video.ID)
	}

	logger.Info("Video purged", zap.Int64("video_id", video.ID), zap.Int64("author_id", video.AuthorID))
	return nil
}

// BanUser bans an account and purges every video it owns, including
// soft-deleted ones. The handle is replaced with the shared placeholder so the
// original name frees up immediately. Admin only.
func (s *ModerationService) BanUser(targetID, actorID int64) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := policy.Authorize(actor, policy.ActionUserBan, policy.Resource{OwnerID: targetID}); err != nil {
		return ErrNoPermission
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.IsBanned {
		return ErrAlreadyBanned
	}

	if _, err := s.userRepo.Update(targetID, map[string]interface{}{
		"user_name": model.BannedHandle,
		"is_banned": true,
	}); err != nil {
		return err
	}

	videos, err := s.videoRepo.ListByAuthorIncludeDeleted(targetID)
	if err != nil {
		return err
	}
	for i := range videos {
		if err := s.purge(&videos[i]); err != nil {
			return err
		}
	}

	logger.Info("Account banned",
		zap.Int64("target_id", targetID), zap.Int64("actor_id", actorID),
		zap.Int("videos_purged", len(videos)))
	return nil
}

// UnbanUser clears the banned flag. Purged content and the original handle are
// not restored. Admin only.
func (s *ModerationService) UnbanUser(targetID, actorID int64) error {
	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := policy.Authorize(actor, policy.ActionUserBan, policy.Resource{OwnerID: targetID}); err != nil {
		return ErrNoPermission
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !target.IsBanned {
		return ErrNotBanned
	}

	_, err = s.userRepo.Update(targetID, map[string]interface{}{"is_banned": false})
	return err
}

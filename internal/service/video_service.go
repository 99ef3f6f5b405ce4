package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	infraMinio "github.com/ramdanolii14/nyantube-sub000/internal/infra/minio"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/policy"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound     = errors.New("video does not exist")
	ErrVideoNoPermission = errors.New("no permission to modify this video")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
)

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	store     ObjectStore
	deduper   ViewDeduper
	indexer   SearchIndexer
}

func NewVideoService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, store ObjectStore, deduper ViewDeduper, indexer SearchIndexer) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		deduper:   deduper,
		indexer:   indexer,
	}
}

// UploadFile describes one file part of the multipart upload.
type UploadFile struct {
	Reader      io.Reader
	Size        int64
	Format      string
	ContentType string
}

// Upload stores the media and thumbnail objects and creates the video row.
// The row is created first so the object names carry the video id; if storage
// rejects either object, the row is removed again.
func (s *VideoService) Upload(authorID int64, req *dto.VideoUploadRequest, media, cover *UploadFile) (*dto.VideoInfo, error) {
	video := &model.Video{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.VideoStatusPublished,
		FileSize:    media.Size,
		FileFormat:  media.Format,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	videoObject := fmt.Sprintf("%d/%d.%s", authorID, video.ID, media.Format)
	if _, err := s.store.Upload(ctx, infraMinio.VideoBucket, videoObject, media.Reader, media.Size, media.ContentType); err != nil {
		logger.Error("Upload to storage failed, rolling back video record",
			zap.Int64("video_id", video.ID), zap.Error(err))
		_ = s.videoRepo.HardDelete(video.ID)
		return nil, fmt.Errorf("failed to store video file: %w", err)
	}

	coverObject := ""
	if cover != nil {
		coverObject = fmt.Sprintf("%d/%d.%s", authorID, video.ID, cover.Format)
		if _, err := s.store.Upload(ctx, infraMinio.CoverBucket, coverObject, cover.Reader, cover.Size, cover.ContentType); err != nil {
			logger.Error("Thumbnail upload failed, rolling back",
				zap.Int64("video_id", video.ID), zap.Error(err))
			_ = s.store.Remove(ctx, infraMinio.VideoBucket, videoObject)
			_ = s.videoRepo.HardDelete(video.ID)
			return nil, fmt.Errorf("failed to store thumbnail: %w", err)
		}
	}

	updates := map[string]interface{}{
		"video_object": videoObject,
		"play_url":     s.store.PublicURL(infraMinio.VideoBucket, videoObject),
	}
	if coverObject != "" {
		updates["cover_object"] = coverObject
		updates["cover_url"] = s.store.PublicURL(infraMinio.CoverBucket, coverObject)
	}

	video, err := s.videoRepo.Update(video.ID, updates)
	if err != nil {
		return nil, err
	}

	if s.indexer != nil {
		if err := s.indexer.SyncVideo(video.ID); err != nil {
			logger.Warn("Search index sync failed after upload",
				zap.Int64("video_id", video.ID), zap.Error(err))
		}
	}

	return toVideoInfo(video, false), nil
}

// GetDetail returns the watch-page view and bumps the view counter, deduped
// per viewer.
func (s *VideoService) GetDetail(ctx context.Context, videoID int64, viewerKey string) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithAuthor(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if s.deduper == nil || s.deduper.ShouldCount(ctx, videoID, viewerKey) {
		if err := s.videoRepo.IncrementViewCount(videoID); err == nil {
			video.ViewCount++
		}
	}

	return toVideoInfo(video, true), nil
}

// Update edits title/description. Owner-only, decided by the policy.
func (s *VideoService) Update(videoID, actorID int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	video, actor, err := s.loadVideoAndActor(videoID, actorID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionVideoEdit, policy.Resource{OwnerID: video.AuthorID}); err != nil {
		return nil, ErrVideoNoPermission
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	video, err = s.videoRepo.Update(videoID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if s.indexer != nil {
		_ = s.indexer.SyncVideo(videoID)
	}

	return toVideoInfo(video, false), nil
}

// SoftDelete marks the owner's video deleted. The row and storage objects
// stay; only listings stop showing it. Moderators go through the purge path
// instead.
func (s *VideoService) SoftDelete(videoID, actorID int64) error {
	video, actor, err := s.loadVideoAndActor(videoID, actorID)
	if err != nil {
		return err
	}

	if err := policy.Authorize(actor, policy.ActionVideoSoftDelete, policy.Resource{OwnerID: video.AuthorID}); err != nil {
		return ErrVideoNoPermission
	}

	if err := s.videoRepo.SoftDelete(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if s.indexer != nil {
		_ = s.indexer.RemoveVideo(videoID)
	}

	return nil
}

// GetFeed pages published videos, newest first.
func (s *VideoService) GetFeed(page, pageSize int) (*dto.VideoListData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.ListVideos(skip, pageSize, nil, nil, true)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, pageSize, true), nil
}

// GetUserVideos pages one account's published videos.
func (s *VideoService) GetUserVideos(authorID int64, page, pageSize int) (*dto.VideoListData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.ListVideos(skip, pageSize, &authorID, nil, false)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, pageSize, false), nil
}

func (s *VideoService) loadVideoAndActor(videoID, actorID int64) (*model.Video, *model.User, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrVideoNotFound
		}
		return nil, nil, err
	}

	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	return video, actor, nil
}

func toVideoInfo(video *model.Video, includeAuthor bool) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:           video.ID,
		AuthorID:     video.AuthorID,
		Title:        video.Title,
		Description:  video.Description,
		PlayURL:      video.PlayURL,
		CoverURL:     video.CoverURL,
		FileSize:     video.FileSize,
		FileFormat:   video.FileFormat,
		Status:       video.Status,
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		DislikeCount: video.DislikeCount,
		CommentCount: video.CommentCount,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}

	if includeAuthor && video.Author.ID != 0 {
		info.Author = &dto.AuthorBrief{
			ID:          video.Author.ID,
			Username:    video.Author.UserName,
			DisplayName: video.Author.DisplayName,
			Avatar:      video.Author.Avatar,
			IsVerified:  video.Author.IsVerified,
		}
	}

	return info
}

func buildVideoListData(videos []model.Video, total int64, page, pageSize int, includeAuthor bool) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i], includeAuthor))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

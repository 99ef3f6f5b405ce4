package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/policy"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("comment does not exist")
	ErrCommentNoPermission = errors.New("no permission to modify this comment")
	ErrParentNotFound      = errors.New("parent comment does not exist")
	ErrParentVideoMismatch = errors.New("parent comment does not belong to this video")
	ErrReplyTooDeep        = errors.New("replies can only target top-level comments")
	ErrCommentTooLong      = fmt.Errorf("comment exceeds %d characters", model.MaxCommentLength)
	ErrCommentRateLimited  = errors.New("comment rate limit reached")
)

// Comment ceilings per trailing hour. Moderators and admins are unbounded.
const (
	standardHourlyCommentLimit = 2
	verifiedHourlyCommentLimit = 20
)

// commentRateWindow is the trailing window the ceilings apply to.
const commentRateWindow = time.Hour

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	userRepo    *repository.UserRepository
	events      EventPublisher
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, events EventPublisher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// hourlyLimit returns the account's comment ceiling, or -1 for unbounded.
func hourlyLimit(user *model.User) int64 {
	if user.IsStaff() {
		return -1
	}
	if user.IsVerified {
		return verifiedHourlyCommentLimit
	}
	return standardHourlyCommentLimit
}

// Create posts a comment or a single-level reply. Length and the rate limit
// are checked before any row is written; replies may only target a top-level
// comment on the same video, so depth never exceeds one.
func (s *CommentService) Create(userID, videoID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if utf8.RuneCountInString(req.Content) > model.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	if limit := hourlyLimit(user); limit >= 0 {
		count, err := s.commentRepo.CountByUserSince(userID, time.Now().Add(-commentRateWindow))
		if err != nil {
			return nil, err
		}
		if count >= limit {
			return nil, fmt.Errorf("%w: at most %d comments per hour", ErrCommentRateLimited, limit)
		}
	}

	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.VideoID != videoID {
			return nil, ErrParentVideoMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrReplyTooDeep
		}
	}

	comment := &model.Comment{
		UserID:   userID,
		VideoID:  videoID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	_ = s.videoRepo.IncrementCommentCount(videoID)

	s.publishCommentEvent(user, video, parent, comment)

	info := toCommentInfo(comment, 0)
	info.Username = &user.UserName
	info.DisplayName = &user.DisplayName
	info.Avatar = user.Avatar
	return info, nil
}

// publishCommentEvent notifies the video owner, or the parent author for a
// reply. Self-notifications are skipped.
func (s *CommentService) publishCommentEvent(actor *model.User, video *model.Video, parent *model.Comment, comment *model.Comment) {
	if s.events == nil {
		return
	}

	recipient := video.AuthorID
	eventType := model.NotificationVideoComment
	if parent != nil {
		recipient = parent.UserID
		eventType = model.NotificationCommentReply
	}
	if recipient == actor.ID {
		return
	}

	event := &infraKafka.NotificationEvent{
		RecipientID: recipient,
		ActorID:     actor.ID,
		Type:        eventType,
		VideoID:     &video.ID,
		CommentID:   &comment.ID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish comment notification",
			zap.Int64("comment_id", comment.ID), zap.Error(err))
	}
}

// Update overwrites the body. Author-only.
func (s *CommentService) Update(commentID, userID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	if utf8.RuneCountInString(req.Content) > model.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	if err := s.commentRepo.Update(commentID, userID, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNoPermission
		}
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return toCommentInfo(comment, 0), nil
}

// Delete removes a comment. The author, the hosting video's owner, and staff
// may delete; the policy decides.
func (s *CommentService) Delete(commentID, actorID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	// The hosting video may already be soft-deleted; its owner still counts.
	video, err := s.videoRepo.GetByIDIncludeDeleted(comment.VideoID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	actor, err := s.userRepo.GetByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	res := policy.Resource{OwnerID: comment.UserID}
	if video != nil {
		res.VideoOwnerID = video.AuthorID
	}
	if err := policy.Authorize(actor, policy.ActionCommentDelete, res); err != nil {
		return ErrCommentNoPermission
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	_ = s.videoRepo.DecrementCommentCount(comment.VideoID)

	return nil
}

// ListByVideo pages a video's top-level comments, or the replies of parentID.
func (s *CommentService) ListByVideo(videoID int64, parentID *int64, page, pageSize int) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByVideo(videoID, parentID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildCommentListData(comments, total, page, pageSize), nil
}

// ListReplies pages one comment's replies.
func (s *CommentService) ListReplies(commentID int64, page, pageSize int) (*dto.CommentListData, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListReplies(commentID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildCommentListData(comments, total, page, pageSize), nil
}

func (s *CommentService) buildCommentListData(comments []model.Comment, total int64, page, pageSize int) *dto.CommentListData {
	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		repliesCount := int64(0)
		if comments[i].ParentID == nil {
			repliesCount, _ = s.commentRepo.CountReplies(comments[i].ID)
		}
		info := toCommentInfo(&comments[i], repliesCount)

		if comments[i].User.ID != 0 {
			info.Username = &comments[i].User.UserName
			info.DisplayName = &comments[i].User.DisplayName
			info.Avatar = comments[i].User.Avatar
		}

		items = append(items, *info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.CommentListData{
		Comments:   items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func toCommentInfo(c *model.Comment, repliesCount int64) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:           c.ID,
		UserID:       c.UserID,
		VideoID:      c.VideoID,
		Content:      c.Content,
		ParentID:     c.ParentID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		RepliesCount: repliesCount,
	}
}

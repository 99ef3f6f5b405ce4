package service

import (
	"context"
	"errors"
	"time"

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
	ErrReportNotFound      = errors.New("report does not exist")
	ErrReportAlreadyClosed = errors.New("report has already been reviewed")
	ErrDuplicateReport     = errors.New("you already have a pending report for this video")
)

type ReportService struct {
	reportRepo *repository.ReportRepository
	videoRepo  *repository.VideoRepository
	userRepo   *repository.UserRepository
	moderation *ModerationService
	events     EventPublisher
}

func NewReportService(reportRepo *repository.ReportRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, moderation *ModerationService, events EventPublisher) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		videoRepo:  videoRepo,
		userRepo:   userRepo,
		moderation: moderation,
		events:     events,
	}
}

// Create files a report against a video. One pending report per reporter per
// video.
func (s *ReportService) Create(reporterID, videoID int64, req *dto.ReportCreateRequest) (*dto.ReportInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	exists, err := s.reportRepo.ExistsPendingByReporter(reporterID, videoID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReport
	}

	report := &model.Report{
		ReporterID:  reporterID,
		VideoID:     videoID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      model.ReportStatusPending,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	return toReportInfo(report), nil
}

// Review closes a pending report. Accepting purges the reported video;
// rejecting just records the decision. Staff only, and a report can only be
// closed once. The reporter gets a notification either way.
func (s *ReportService) Review(reportID, reviewerID int64, status string) (*dto.ReportInfo, error) {
	reviewer, err := s.userRepo.GetByID(reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := policy.Authorize(reviewer, policy.ActionReportReview, policy.Resource{}); err != nil {
		return nil, ErrNoPermission
	}

	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status != model.ReportStatusPending {
		return nil, ErrReportAlreadyClosed
	}

	if err := s.reportRepo.SetStatus(reportID, reviewerID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportAlreadyClosed
		}
		return nil, err
	}

	if status == model.ReportStatusAccepted {
		if err := s.moderation.PurgeVideo(report.VideoID, reviewerID); err != nil && !errors.Is(err, ErrVideoNotFound) {
			logger.Error("Failed to purge video for accepted report",
				zap.Int64("report_id", reportID), zap.Int64("video_id", report.VideoID), zap.Error(err))
			return nil, err
		}
	}

	s.notifyReporter(report, reviewerID, status)

	report, err = s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	return toReportInfo(report), nil
}

func (s *ReportService) notifyReporter(report *model.Report, reviewerID int64, status string) {
	if s.events == nil {
		return
	}

	event := &infraKafka.NotificationEvent{
		RecipientID: report.ReporterID,
		ActorID:     reviewerID,
		Type:        model.NotificationReportReviewed,
		VideoID:     &report.VideoID,
		Message:     "Your report was " + status,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish report notification",
			zap.Int64("report_id", report.ID), zap.Error(err))
	}
}

// List pages the review queue, optionally filtered by status.
func (s *ReportService) List(page, pageSize int, status *string) (*dto.ReportListData, error) {
	skip := (page - 1) * pageSize
	reports, total, err := s.reportRepo.List(skip, pageSize, status)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReportInfo, 0, len(reports))
	for i := range reports {
		info := toReportInfo(&reports[i])
		if reports[i].Reporter.ID != 0 {
			info.ReporterName = &reports[i].Reporter.UserName
		}
		items = append(items, *info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.ReportListData{
		Reports:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func toReportInfo(r *model.Report) *dto.ReportInfo {
	return &dto.ReportInfo{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		VideoID:     r.VideoID,
		Reason:      r.Reason,
		Description: r.Description,
		Status:      r.Status,
		ReviewerID:  r.ReviewerID,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}

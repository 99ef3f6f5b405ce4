package repository

import (
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id int64) (*model.Report, error) {
	var report model.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// SetStatus transitions a pending report and stamps the reviewer. Only pending
// reports transition; reviewing twice is a no-op reported as not found.
func (r *ReportRepository) SetStatus(reportID, reviewerID int64, status string) error {
	now := time.Now()
	result := r.db.Model(&model.Report{}).
		Where("id = ? AND status = ?", reportID, model.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewer_id": reviewerID,
			"reviewed_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List pages reports for the review queue, optionally filtered by status,
// oldest pending first.
func (r *ReportRepository) List(skip, limit int, status *string) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{})

	if status != nil && *status != "" {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.Preload("Reporter").Order("created_at ASC").
		Offset(skip).Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// ExistsPendingByReporter reports whether the account already has a pending
// report against the video.
func (r *ReportRepository) ExistsPendingByReporter(reporterID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Report{}).
		Where("reporter_id = ? AND video_id = ? AND status = ?",
			reporterID, videoID, model.ReportStatusPending).
		Count(&count).Error
	return count > 0, err
}

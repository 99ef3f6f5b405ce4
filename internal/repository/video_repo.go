package repository

import (
	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID returns the video if it is not soft-deleted.
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND status != ?", id, model.VideoStatusDeleted).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDIncludeDeleted returns the video row regardless of soft-delete state.
// Moderators purge through this path.
func (r *VideoRepository) GetByIDIncludeDeleted(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithAuthor returns the video with its author preloaded.
func (r *VideoRepository) GetByIDWithAuthor(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Author").
		Where("id = ? AND status != ?", id, model.VideoStatusDeleted).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDAndAuthor loads a video owned by authorID, for permission checks.
func (r *VideoRepository) GetByIDAndAuthor(videoID, authorID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND author_id = ? AND status != ?",
		videoID, authorID, model.VideoStatusDeleted).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create inserts a new video row.
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update applies the given column updates.
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByIDIncludeDeleted(id)
}

// SoftDelete marks the video deleted; the row and storage objects remain.
func (r *VideoRepository) SoftDelete(id int64) error {
	result := r.db.Model(&model.Video{}).
		Where("id = ? AND status != ?", id, model.VideoStatusDeleted).
		Update("status", model.VideoStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete removes the video row entirely.
func (r *VideoRepository) HardDelete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByAuthorIncludeDeleted returns every row owned by authorID, soft-deleted
// included. The ban cascade purges through this.
func (r *VideoRepository) ListByAuthorIncludeDeleted(authorID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("author_id = ?", authorID).Find(&videos).Error
	return videos, err
}

// DeleteByAuthor bulk-deletes all video rows owned by authorID.
func (r *VideoRepository) DeleteByAuthor(authorID int64) (int64, error) {
	result := r.db.Where("author_id = ?", authorID).Delete(&model.Video{})
	return result.RowsAffected, result.Error
}

// ListVideos pages videos, excluding soft-deleted rows.
func (r *VideoRepository) ListVideos(skip, limit int, authorID *int64, search *string, withAuthor bool) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Where("status = ?", model.VideoStatusPublished)

	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}
	if search != nil && *search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+*search+"%", "%"+*search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	findQuery := query.Order("created_at DESC").Offset(skip).Limit(limit)
	if withAuthor {
		findQuery = findQuery.Preload("Author")
	}

	var videos []model.Video
	if err := findQuery.Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// GetByIDsWithAuthor batch-loads published videos with authors, for search hits.
func (r *VideoRepository) GetByIDsWithAuthor(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Author").
		Where("id IN ? AND status = ?", ids, model.VideoStatusPublished).
		Find(&videos).Error
	return videos, err
}

// IncrementViewCount bumps the view counter by one.
func (r *VideoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementCommentCount bumps the comment counter by one.
func (r *VideoRepository) IncrementCommentCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
}

// DecrementCommentCount lowers the comment counter, not below zero.
func (r *VideoRepository) DecrementCommentCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ? AND comment_count > 0", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
}

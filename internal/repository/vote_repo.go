package repository

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Apply runs one transition of the per-(video, account) vote state machine and
// recounts the video's like/dislike counters inside the same transaction, so a
// concurrent reader never observes a counter that disagrees with the rows.
//
// Transitions: no row + choice -> insert; same choice again -> delete (toggle
// off); other choice -> overwrite type in place.
//
// Returns the resulting state (VoteLike, VoteDislike, or "" for no vote) and
// the recounted totals.
func (r *VoteRepository) Apply(userID, videoID int64, voteType string) (string, int64, int64, error) {
	var state string
	var likes, dislikes int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("user_id = ? AND video_id = ?", userID, videoID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := &model.Vote{UserID: userID, VideoID: videoID, Type: voteType}
			if err := tx.Create(vote).Error; err != nil {
				return err
			}
			state = voteType

		case err != nil:
			return err

		case existing.Type == voteType:
			// Re-selecting the active choice cancels it.
			if err := tx.Delete(&model.Vote{}, existing.ID).Error; err != nil {
				return err
			}
			state = ""

		default:
			if err := tx.Model(&model.Vote{}).Where("id = ?", existing.ID).
				Update("type", voteType).Error; err != nil {
				return err
			}
			state = voteType
		}

		if err := tx.Model(&model.Vote{}).
			Where("video_id = ? AND type = ?", videoID, model.VoteLike).
			Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Vote{}).
			Where("video_id = ? AND type = ?", videoID, model.VoteDislike).
			Count(&dislikes).Error; err != nil {
			return err
		}

		return tx.Model(&model.Video{}).Where("id = ?", videoID).
			Updates(map[string]interface{}{
				"like_count":    likes,
				"dislike_count": dislikes,
			}).Error
	})
	if err != nil {
		return "", 0, 0, err
	}

	return state, likes, dislikes, nil
}

// GetStatus returns the account's current vote type for the video, or "" when
// no vote exists.
func (r *VoteRepository) GetStatus(userID, videoID int64) (string, error) {
	var vote model.Vote
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return vote.Type, nil
}

// CountByVideo counts votes of the given type on a video.
func (r *VoteRepository) CountByVideo(videoID int64, voteType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Vote{}).
		Where("video_id = ? AND type = ?", videoID, voteType).Count(&count).Error
	return count, err
}

// DeleteByVideo removes every vote row of a purged video.
func (r *VoteRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Vote{}).Error
}

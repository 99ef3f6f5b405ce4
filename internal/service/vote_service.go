package service

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"

	"gorm.io/gorm"
)

var ErrInvalidVoteType = errors.New("vote type must be like or dislike")

type VoteService struct {
	voteRepo  *repository.VoteRepository
	videoRepo *repository.VideoRepository
}

func NewVoteService(voteRepo *repository.VoteRepository, videoRepo *repository.VideoRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo, videoRepo: videoRepo}
}

// Vote runs one transition of the like/dislike state machine: casting a new
// choice inserts, re-casting the active choice cancels, casting the other
// choice switches. Counters come back recounted from the same transaction.
func (s *VoteService) Vote(userID, videoID int64, voteType string) (*dto.VoteStatusData, error) {
	if voteType != model.VoteLike && voteType != model.VoteDislike {
		return nil, ErrInvalidVoteType
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	state, likes, dislikes, err := s.voteRepo.Apply(userID, videoID, voteType)
	if err != nil {
		return nil, err
	}

	return &dto.VoteStatusData{
		VideoID:      videoID,
		Vote:         state,
		LikeCount:    likes,
		DislikeCount: dislikes,
	}, nil
}

// GetStatus reports the caller's current vote and the video's counters.
func (s *VoteService) GetStatus(userID, videoID int64) (*dto.VoteStatusData, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	state, err := s.voteRepo.GetStatus(userID, videoID)
	if err != nil {
		return nil, err
	}

	return &dto.VoteStatusData{
		VideoID:      videoID,
		Vote:         state,
		LikeCount:    video.LikeCount,
		DislikeCount: video.DislikeCount,
	}, nil
}

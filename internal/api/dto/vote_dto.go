package dto

// VoteRequest casts or toggles a like/dislike.
type VoteRequest struct {
	Type string `json:"type" binding:"required,oneof=like dislike"`
}

// VoteStatusData reports the caller's vote and the video's counters.
type VoteStatusData struct {
	VideoID      int64  `json:"video_id"`
	Vote         string `json:"vote"` // "like", "dislike", or "" for none
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
}

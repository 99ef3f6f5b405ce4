package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	infraES "github.com/ramdanolii14/nyantube-sub000/internal/infra/elasticsearch"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	searchSourceES = "elasticsearch"
	searchSourceDB = "database"
)

// SearchService answers full-text queries from Elasticsearch and falls back
// to a database LIKE scan when the cluster is down. It also keeps the index in
// step with the videos table.
type SearchService struct {
	videoRepo *repository.VideoRepository
	esEnabled bool
}

func NewSearchService(videoRepo *repository.VideoRepository, esEnabled bool) *SearchService {
	return &SearchService{videoRepo: videoRepo, esEnabled: esEnabled}
}

type videoDocument struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchVideos queries published videos by title and description. Results are
// hydrated from the database so counters are always current.
func (s *SearchService) SearchVideos(ctx context.Context, req *dto.SearchVideoRequest) (*dto.SearchVideoData, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	if s.esEnabled {
		data, err := s.searchES(ctx, req.Query, page, pageSize)
		if err == nil {
			return data, nil
		}
		logger.Warn("Elasticsearch query failed, falling back to database",
			zap.String("query", req.Query), zap.Error(err))
	}

	return s.searchDB(req.Query, page, pageSize)
}

func (s *SearchService) searchES(ctx context.Context, query string, page, pageSize int) (*dto.SearchVideoData, error) {
	body := map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"status": model.VideoStatusPublished},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	resp, err := infraES.Search(ctx, infraES.VideosIndexName(), &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch search returned %s", resp.Status())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source videoDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}

	videos, err := s.videoRepo.GetByIDsWithAuthor(ids)
	if err != nil {
		return nil, err
	}

	// Keep Elasticsearch's relevance ordering.
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	items := make([]dto.VideoInfo, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			items = append(items, *toVideoInfo(v, true))
		}
	}

	total := result.Hits.Total.Value
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SearchVideoData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Source:     searchSourceES,
	}, nil
}

func (s *SearchService) searchDB(query string, page, pageSize int) (*dto.SearchVideoData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.ListVideos(skip, pageSize, nil, &query, true)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i], true))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SearchVideoData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Source:     searchSourceDB,
	}, nil
}

// SyncVideo upserts a video's search document. Soft-deleted or missing videos
// are removed from the index instead.
func (s *SearchService) SyncVideo(videoID int64) error {
	if !s.esEnabled {
		return nil
	}

	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.RemoveVideo(videoID)
		}
		return err
	}

	doc := videoDocument{
		ID:          video.ID,
		AuthorID:    video.AuthorID,
		Title:       video.Title,
		Description: video.Description,
		Status:      video.Status,
		CreatedAt:   video.CreatedAt,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Index(ctx, infraES.VideosIndexName(), strconv.FormatInt(videoID, 10), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("elasticsearch index returned %s", resp.Status())
	}
	return nil
}

// RemoveVideo drops a video's search document. A missing document is fine.
func (s *SearchService) RemoveVideo(videoID int64) error {
	if !s.esEnabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := infraES.Delete(ctx, infraES.VideosIndexName(), strconv.FormatInt(videoID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete returned %s", resp.Status())
	}
	return nil
}

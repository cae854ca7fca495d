package usecase

import (
	"context"
	"fmt"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

const (
	defaultTargetCount = 50
	collectHardCeiling = 500
	collectPageSize    = 50
)

// ProgressFunc reports collection progress after each page. The running total
// is monotonically non-decreasing across a single collection run.
type ProgressFunc func(collected, target int)

// IVideoUseCase defines the video search, collection and lookup operations.
type IVideoUseCase interface {
	// CollectVideosByKeyword gathers up to TargetCount scored videos across
	// sequential search pages. onProgress may be nil.
	CollectVideosByKeyword(ctx context.Context, req *dto.CollectRequest, onProgress ProgressFunc) (*dto.CollectResponse, error)
	SearchVideos(ctx context.Context, req *dto.VideoSearchRequest, pageToken string) (*dto.VideoPage, error)
	GetVideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error)
	ListCachedVideos(ctx context.Context, page, pageSize int) ([]model.VideoRecord, int64, error)
	GetVideoCategories(ctx context.Context, regionCode string) ([]model.VideoCategory, error)
	GetVideoComments(ctx context.Context, videoID string, maxResults int64) ([]model.VideoComment, error)
}

// VideoUseCase implements the video operations over the YouTube client with
// an optional persistent cache.
type VideoUseCase struct {
	youtubeRepo repository.IYouTube
	cache       repository.IVideoCache // optional
}

func NewVideoUseCase(youtubeRepo repository.IYouTube) IVideoUseCase {
	return &VideoUseCase{youtubeRepo: youtubeRepo}
}

// NewVideoUseCaseWithCache creates a video use case with the persistent cache
// configured.
func NewVideoUseCaseWithCache(youtubeRepo repository.IYouTube, cache repository.IVideoCache) IVideoUseCase {
	return &VideoUseCase{youtubeRepo: youtubeRepo, cache: cache}
}

// CollectVideosByKeyword pages through search results until the target is
// reached, the API runs out of pages, or the fetch ceiling is hit. Pages are
// requested strictly sequentially since each needs the prior page's token.
// A page failing mid-run ends the loop with the videos gathered so far rather
// than discarding them.
func (u *VideoUseCase) CollectVideosByKeyword(ctx context.Context, req *dto.CollectRequest, onProgress ProgressFunc) (*dto.CollectResponse, error) {
	if req == nil || req.Keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	target := req.TargetCount
	if target <= 0 {
		target = defaultTargetCount
	}
	// The ceiling allows one slack page over the target so a short final page
	// doesn't cost an extra round trip, but never exceeds the hard cap.
	ceiling := target + collectPageSize
	if ceiling > collectHardCeiling {
		ceiling = collectHardCeiling
	}

	collected := make([]model.VideoRecord, 0, target)
	pageToken := ""
	for len(collected) < ceiling {
		page, err := u.youtubeRepo.SearchPage(ctx, &req.VideoSearchRequest, pageToken)
		if err != nil {
			if len(collected) == 0 {
				return nil, fmt.Errorf("failed to collect videos: %w", err)
			}
			logger.GetLogger().WithFields(map[string]interface{}{
				"error":     err,
				"collected": len(collected),
			}).Warn("collection ended early, returning partial result")
			break
		}
		collected = append(collected, page.Items...)
		if onProgress != nil {
			onProgress(len(collected), target)
		}
		if len(collected) >= target {
			break
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	// The hard cap binds even when the requested target exceeds it.
	if len(collected) > ceiling {
		collected = collected[:ceiling]
	}
	if len(collected) > target {
		collected = collected[:target]
	}

	if u.cache != nil {
		if err := u.cache.UpsertVideos(ctx, collected); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to cache collected videos")
		}
	}

	return &dto.CollectResponse{
		Keyword:  req.Keyword,
		Videos:   collected,
		Total:    len(collected),
		Complete: len(collected) >= target,
	}, nil
}

// SearchVideos runs a single search page.
func (u *VideoUseCase) SearchVideos(ctx context.Context, req *dto.VideoSearchRequest, pageToken string) (*dto.VideoPage, error) {
	if req == nil || req.Keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	page, err := u.youtubeRepo.SearchPage(ctx, req, pageToken)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return page, nil
}

// GetVideoDetails resolves a single video, consulting the cache first.
func (u *VideoUseCase) GetVideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}
	if u.cache != nil {
		cached, err := u.cache.GetVideo(ctx, videoID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("video cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}
	records, err := u.youtubeRepo.VideoDetails(ctx, []string{videoID})
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}
	if u.cache != nil {
		if err := u.cache.UpsertVideos(ctx, records[:1]); err != nil {
			logger.GetLogger().WithField("error", err).Warn("video cache write failed")
		}
	}
	return &records[0], nil
}

// ListCachedVideos serves results from the persistent cache only.
func (u *VideoUseCase) ListCachedVideos(ctx context.Context, page, pageSize int) ([]model.VideoRecord, int64, error) {
	if u.cache == nil {
		return nil, 0, fmt.Errorf("cache repository not configured")
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return u.cache.ListVideos(ctx, pageSize, offset)
}

func (u *VideoUseCase) GetVideoCategories(ctx context.Context, regionCode string) ([]model.VideoCategory, error) {
	categories, err := u.youtubeRepo.VideoCategories(ctx, regionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get video categories: %w", err)
	}
	return categories, nil
}

func (u *VideoUseCase) GetVideoComments(ctx context.Context, videoID string, maxResults int64) ([]model.VideoComment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}
	comments, err := u.youtubeRepo.VideoComments(ctx, videoID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to get video comments: %w", err)
	}
	return comments, nil
}

package repository

import (
	"context"

	"tubelens/domain/dto"
	"tubelens/domain/model"
)

// IYouTube defines the interface over the external video data API.
type IYouTube interface {
	// SearchPage runs one page of a video search and returns scored records
	// plus the token for the next page ("" when exhausted). Pages must be
	// requested strictly sequentially: each call needs the prior page's token.
	SearchPage(ctx context.Context, req *dto.VideoSearchRequest, pageToken string) (*dto.VideoPage, error)

	// VideoDetails resolves full records for the given IDs in one batch call.
	VideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error)

	// ChannelDetails fetches a single channel by ID.
	ChannelDetails(ctx context.Context, channelID string) (*model.ChannelRecord, error)

	// ChannelVideos returns a channel's most recent uploads, newest first.
	ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]model.VideoRecord, error)

	// VideoCategories lists the region's video categories.
	VideoCategories(ctx context.Context, regionCode string) ([]model.VideoCategory, error)

	// VideoComments returns up to maxResults top-level comments for a video.
	VideoComments(ctx context.Context, videoID string, maxResults int64) ([]model.VideoComment, error)
}

// IVideoCache caches scored video records between analysis sessions.
type IVideoCache interface {
	GetVideo(ctx context.Context, videoID string) (*model.VideoRecord, error)
	UpsertVideos(ctx context.Context, videos []model.VideoRecord) error
	ListVideos(ctx context.Context, limit, offset int) ([]model.VideoRecord, int64, error)
}

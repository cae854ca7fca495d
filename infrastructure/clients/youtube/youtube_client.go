package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/domain/scoring"
	"tubelens/infrastructure/configuration"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const searchPageSize = 50

// Client wraps the YouTube Data API v3 service in either API-key mode
// (read-only, the common case) or full OAuth2 mode.
type Client struct {
	service     *youtube.Service
	oauthConfig *oauth2.Config
	token       *oauth2.Token
	ctx         context.Context
}

// NewYouTubeClient creates a YouTube Data API client. When no OAuth
// credentials are configured it falls back to API-key-only mode, which covers
// every read path the dashboard needs.
func NewYouTubeClient(ctx context.Context, config *configuration.YouTubeConfig) (repository.IYouTube, error) {
	if (config.AccessToken == "" || config.RefreshToken == "") && config.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &Client{service: service, ctx: ctx}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes: []string{
			youtube.YoutubeReadonlyScope,
			youtube.YoutubeForceSslScope,
		},
		Endpoint: google.Endpoint,
	}

	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
	}

	httpClient := oauth2Config.Client(ctx, token)
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:     service,
		oauthConfig: oauth2Config,
		token:       token,
		ctx:         ctx,
	}, nil
}

// SearchPage runs one page of search.list and resolves the hits through
// videos.list so every returned record carries full statistics. The two-phase
// fetch is required because search.list alone never returns view counts.
func (c *Client) SearchPage(ctx context.Context, req *dto.VideoSearchRequest, pageToken string) (*dto.VideoPage, error) {
	if err := c.refreshTokenIfNeeded(); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	call := c.service.Search.List([]string{"id", "snippet"}).
		Q(req.Keyword).
		Type("video").
		MaxResults(searchPageSize)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	if req.Order != "" {
		call = call.Order(req.Order)
	}
	if req.VideoDuration != "" {
		call = call.VideoDuration(req.VideoDuration)
	}
	if req.RegionCode != "" {
		call = call.RegionCode(req.RegionCode)
	}
	if req.CategoryID != "" {
		call = call.VideoCategoryId(req.CategoryID)
	}
	if req.PublishedAfter != "" {
		if publishedAfter, err := time.Parse(time.RFC3339, req.PublishedAfter); err == nil {
			call = call.PublishedAfter(publishedAfter.Format(time.RFC3339))
		}
	}
	if req.PublishedBefore != "" {
		if publishedBefore, err := time.Parse(time.RFC3339, req.PublishedBefore); err == nil {
			call = call.PublishedBefore(publishedBefore.Format(time.RFC3339))
		}
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	var videoIDs []string
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}

	items := make([]model.VideoRecord, 0, len(videoIDs))
	if len(videoIDs) > 0 {
		items, err = c.VideoDetails(ctx, videoIDs)
		if err != nil {
			return nil, err
		}
	}

	return &dto.VideoPage{
		Items:         items,
		NextPageToken: response.NextPageToken,
	}, nil
}

// VideoDetails resolves full statistics for up to 50 video IDs in one call.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	response, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(ids, ",")).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	records := make([]model.VideoRecord, 0, len(response.Items))
	for _, video := range response.Items {
		records = append(records, convertToVideoRecord(video))
	}
	return records, nil
}

// ChannelDetails fetches a single channel with statistics and the uploads
// playlist ID used for recent-video listing.
func (c *Client) ChannelDetails(ctx context.Context, channelID string) (*model.ChannelRecord, error) {
	response, err := c.service.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel not found: %s", channelID)
	}

	channel := response.Items[0]
	publishedAt, _ := time.Parse(time.RFC3339, channel.Snippet.PublishedAt)

	record := &model.ChannelRecord{
		ID:          channel.Id,
		Title:       channel.Snippet.Title,
		Description: channel.Snippet.Description,
		PublishedAt: publishedAt,
	}
	if channel.Snippet.Thumbnails != nil && channel.Snippet.Thumbnails.High != nil {
		record.ThumbnailURL = channel.Snippet.Thumbnails.High.Url
	}
	if channel.Statistics != nil {
		record.SubscriberCount = int64(channel.Statistics.SubscriberCount)
		record.ViewCount = int64(channel.Statistics.ViewCount)
		record.VideoCount = int64(channel.Statistics.VideoCount)
	}
	if channel.ContentDetails != nil && channel.ContentDetails.RelatedPlaylists != nil {
		record.UploadsPlaylistID = channel.ContentDetails.RelatedPlaylists.Uploads
	}
	return record, nil
}

// ChannelVideos returns a channel's most recent uploads, newest first, with
// full statistics attached.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]model.VideoRecord, error) {
	if maxResults <= 0 || maxResults > searchPageSize {
		maxResults = searchPageSize
	}
	response, err := c.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel videos: %w", err)
	}

	var videoIDs []string
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	return c.VideoDetails(ctx, videoIDs)
}

// VideoCategories lists the assignable video categories for a region.
func (c *Client) VideoCategories(ctx context.Context, regionCode string) ([]model.VideoCategory, error) {
	if regionCode == "" {
		regionCode = "US"
	}
	response, err := c.service.VideoCategories.List([]string{"snippet"}).
		RegionCode(regionCode).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video categories: %w", err)
	}

	categories := make([]model.VideoCategory, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet != nil && item.Snippet.Assignable {
			categories = append(categories, model.VideoCategory{ID: item.Id, Title: item.Snippet.Title})
		}
	}
	return categories, nil
}

// VideoComments returns up to maxResults top-level comments, most relevant
// first.
func (c *Client) VideoComments(ctx context.Context, videoID string, maxResults int64) ([]model.VideoComment, error) {
	if maxResults <= 0 || maxResults > 100 {
		maxResults = 100
	}
	response, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		Order("relevance").
		TextFormat("plainText").
		MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video comments: %w", err)
	}

	comments := make([]model.VideoComment, 0, len(response.Items))
	for _, thread := range response.Items {
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
			continue
		}
		top := thread.Snippet.TopLevelComment
		publishedAt, _ := time.Parse(time.RFC3339, top.Snippet.PublishedAt)
		comments = append(comments, model.VideoComment{
			ID:                top.Id,
			VideoID:           videoID,
			AuthorDisplayName: top.Snippet.AuthorDisplayName,
			Text:              top.Snippet.TextDisplay,
			LikeCount:         top.Snippet.LikeCount,
			PublishedAt:       publishedAt,
		})
	}
	return comments, nil
}

// convertToVideoRecord maps a raw API video onto the scored record the rest
// of the system consumes. Duration classification, hashtag extraction and the
// popularity score all happen here so a record is complete on arrival.
func convertToVideoRecord(video *youtube.Video) model.VideoRecord {
	publishedAt, _ := time.Parse(time.RFC3339, video.Snippet.PublishedAt)

	var viewCount, likeCount, commentCount int64
	if video.Statistics != nil {
		viewCount = int64(video.Statistics.ViewCount)
		likeCount = int64(video.Statistics.LikeCount)
		commentCount = int64(video.Statistics.CommentCount)
	}

	var durationSeconds int
	if video.ContentDetails != nil {
		durationSeconds = scoring.ParseISODuration(video.ContentDetails.Duration)
	}

	record := model.VideoRecord{
		ID:              video.Id,
		Title:           video.Snippet.Title,
		Description:     video.Snippet.Description,
		PublishedAt:     publishedAt,
		Tags:            video.Snippet.Tags,
		Hashtags:        extractHashtags(video.Snippet.Description),
		DurationSeconds: durationSeconds,
		VideoType:       scoring.ClassifyVideoType(durationSeconds),
		ChannelID:       video.Snippet.ChannelId,
		ChannelTitle:    video.Snippet.ChannelTitle,
		ViewCount:       viewCount,
		LikeCount:       likeCount,
		CommentCount:    commentCount,
		PopularityScore: scoring.PopularityScore(viewCount, likeCount, commentCount),
	}

	if video.Snippet.Thumbnails != nil {
		switch {
		case video.Snippet.Thumbnails.High != nil:
			record.ThumbnailURL = video.Snippet.Thumbnails.High.Url
		case video.Snippet.Thumbnails.Medium != nil:
			record.ThumbnailURL = video.Snippet.Thumbnails.Medium.Url
		case video.Snippet.Thumbnails.Default != nil:
			record.ThumbnailURL = video.Snippet.Thumbnails.Default.Url
		}
	}

	return record
}

// extractHashtags pulls #tags out of a video description. Tags are reported
// without the leading '#' and deduplicated case-insensitively in first-seen
// order.
func extractHashtags(description string) []string {
	var tags []string
	seen := make(map[string]bool)
	fields := strings.Fields(description)
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") || len(f) < 2 {
			continue
		}
		tag := strings.TrimPrefix(f, "#")
		tag = strings.TrimRight(tag, ".,!?:;")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}

// refreshTokenIfNeeded refreshes the OAuth token when it is within five
// minutes of expiry. API-key mode is a no-op.
func (c *Client) refreshTokenIfNeeded() error {
	if c.oauthConfig == nil || c.token == nil {
		return nil
	}
	if c.token.Expiry.IsZero() || time.Until(c.token.Expiry) < 5*time.Minute {
		newToken, err := c.oauthConfig.TokenSource(c.ctx, c.token).Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		httpClient := c.oauthConfig.Client(c.ctx, newToken)
		service, err := youtube.NewService(c.ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			return fmt.Errorf("failed to recreate YouTube service with refreshed token: %w", err)
		}
		c.service = service
	}
	return nil
}

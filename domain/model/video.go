package model

import "time"

// VideoType classifies a video by duration: 60 seconds or less is a short.
type VideoType string

const (
	VideoTypeShort   VideoType = "short"
	VideoTypeRegular VideoType = "regular"
)

// VideoRecord represents a scored YouTube video as consumed by the dashboard.
// It is built once from the raw API item and never mutated afterwards.
type VideoRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublishedAt     time.Time `json:"published_at"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	Tags            []string  `json:"tags"`
	Hashtags        []string  `json:"hashtags"`
	DurationSeconds int       `json:"duration_seconds"`
	VideoType       VideoType `json:"video_type"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	PopularityScore float64   `json:"popularity_score"`
}

// ChannelRecord represents a YouTube channel fetched for an analysis session.
type ChannelRecord struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ThumbnailURL      string    `json:"thumbnail_url"`
	UploadsPlaylistID string    `json:"uploads_playlist_id"`
	VideoCount        int64     `json:"video_count"`
	PublishedAt       time.Time `json:"published_at"`
	SubscriberCount   int64     `json:"subscriber_count"`
	ViewCount         int64     `json:"view_count"`
}

// VideoComment represents a top-level comment on a video.
type VideoComment struct {
	ID                string    `json:"id"`
	VideoID           string    `json:"video_id"`
	AuthorDisplayName string    `json:"author_display_name"`
	Text              string    `json:"text"`
	LikeCount         int64     `json:"like_count"`
	PublishedAt       time.Time `json:"published_at"`
}

// VideoCategory represents an entry from videoCategories.list.
type VideoCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

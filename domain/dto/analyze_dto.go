package dto

import "tubelens/domain/model"

// ChannelAnalyzeRequest targets a channel for strategy/growth/consulting runs.
type ChannelAnalyzeRequest struct {
	ChannelID string `json:"channel_id" binding:"required"`
}

// VideoAnalyzeRequest targets a single video (sentiment, thumbnail critique).
type VideoAnalyzeRequest struct {
	VideoID string `json:"video_id" binding:"required"`
}

// TopicRequest drives content generation (shorts script, titles, thumbnail text).
type TopicRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// TrendRequest runs the trend + rising-creator enrichment over a keyword batch.
type TrendRequest struct {
	Keyword     string `json:"keyword" binding:"required"`
	TargetCount int    `json:"target_count,omitempty"`
}

// TrendResponse carries the batch plus both enrichments. Either enrichment may
// come back empty when its branch failed; the videos are always present.
type TrendResponse struct {
	Videos         []model.VideoRecord  `json:"videos"`
	Trend          model.TrendInsight   `json:"trend"`
	RisingCreators model.RisingCreators `json:"rising_creators"`
}

// BattleRequest names the two channels to compare.
type BattleRequest struct {
	ChannelAID string `json:"channel_a_id" binding:"required"`
	ChannelBID string `json:"channel_b_id" binding:"required"`
}

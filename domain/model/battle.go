package model

// BattleStats holds the derived comparison metrics for one channel.
// Computed per comparison request and discarded afterwards.
type BattleStats struct {
	ChannelID       string  `json:"channel_id"`
	ChannelTitle    string  `json:"channel_title"`
	Subscribers     int64   `json:"subscribers"`
	TotalViews      int64   `json:"total_views"`
	AvgViews        float64 `json:"avg_views"`
	EngagementRate  float64 `json:"engagement_rate"`
	UploadFrequency float64 `json:"upload_frequency"`
	VideoCount      int64   `json:"video_count"`
	PowerScore      float64 `json:"power_score"`
}

// MetricWeights is the per-metric weighting used to compose a power score.
// The model may propose weights; these defaults apply when it does not.
type MetricWeights struct {
	Subscribers     float64 `json:"subscribers"`
	TotalViews      float64 `json:"totalViews"`
	AvgViews        float64 `json:"avgViews"`
	EngagementRate  float64 `json:"engagementRate"`
	UploadFrequency float64 `json:"uploadFrequency"`
}

func DefaultMetricWeights() MetricWeights {
	return MetricWeights{
		Subscribers:     0.3,
		TotalViews:      0.25,
		AvgViews:        0.2,
		EngagementRate:  0.15,
		UploadFrequency: 0.1,
	}
}

// BattleResult is the full outcome of a channel comparison. Winner is always
// derived locally from the two power scores, never from model text.
type BattleResult struct {
	StatsA   BattleStats    `json:"stats_a"`
	StatsB   BattleStats    `json:"stats_b"`
	Winner   string         `json:"winner"` // "A", "B" or "Tie"
	Analysis BattleAnalysis `json:"analysis"`
}

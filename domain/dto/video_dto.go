package dto

import "tubelens/domain/model"

// VideoSearchRequest holds the search filters for a collection run.
type VideoSearchRequest struct {
	Keyword         string `json:"keyword" binding:"required"`
	Order           string `json:"order,omitempty"`            // relevance, date, viewCount
	VideoDuration   string `json:"video_duration,omitempty"`   // any, short, medium, long
	PublishedAfter  string `json:"published_after,omitempty"`  // RFC3339
	PublishedBefore string `json:"published_before,omitempty"` // RFC3339
	RegionCode      string `json:"region_code,omitempty"`
	CategoryID      string `json:"category_id,omitempty"`
}

// VideoPage is one page of scored search results.
type VideoPage struct {
	Items         []model.VideoRecord `json:"items"`
	NextPageToken string              `json:"next_page_token,omitempty"`
}

// CollectRequest asks for up to TargetCount scored videos for a keyword.
type CollectRequest struct {
	VideoSearchRequest
	TargetCount int `json:"target_count,omitempty"`
}

// CollectResponse is the aggregated, truncated collection result.
type CollectResponse struct {
	Keyword  string              `json:"keyword"`
	Videos   []model.VideoRecord `json:"videos"`
	Total    int                 `json:"total"`
	Complete bool                `json:"complete"` // false when fewer videos than requested were found
}

package repository

import (
	"context"
	"time"
)

// AnalysisRecord is one completed AI analysis stored for the user's history.
type AnalysisRecord struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	UserID    string      `bson:"user_id" json:"user_id"`
	Kind      string      `bson:"kind" json:"kind"` // strategy, growth, thumbnail, ...
	Subject   string      `bson:"subject" json:"subject"`
	Result    interface{} `bson:"result" json:"result"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}

// IHistory persists completed analyses. Writes are best-effort: a history
// failure never fails the analysis that produced it.
type IHistory interface {
	Save(ctx context.Context, rec AnalysisRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]AnalysisRecord, error)
}

// IEvents publishes analysis lifecycle events for downstream consumers.
type IEvents interface {
	PublishAnalysisCompleted(ctx context.Context, userID, kind, subject string) error
}

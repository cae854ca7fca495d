package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"

	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

const historyDatabase = "tubelens"

// HistoryRepository stores completed analyses in MongoDB. A nil client turns
// every call into a no-op so the dashboard keeps working without history.
type HistoryRepository struct{ mongoDb *mongo.Client }

func NewHistoryRepository(client *mongo.Client) repository.IHistory {
	return &HistoryRepository{mongoDb: client}
}

func (r *HistoryRepository) Save(ctx context.Context, rec repository.AnalysisRecord) error {
	if r.mongoDb == nil {
		logger.GetLogger().Info("MongoDB client is nil - skipping history save")
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	collection := r.mongoDb.Database(historyDatabase).Collection("analyses")
	if _, err := collection.InsertOne(ctx, rec); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while saving analysis history")
		return err
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]repository.AnalysisRecord, error) {
	if r.mongoDb == nil {
		logger.GetLogger().Info("MongoDB client is nil - returning empty history")
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	collection := r.mongoDb.Database(historyDatabase).Collection("analyses")
	opts := mongooptions.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while fetching analysis history")
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var records []repository.AnalysisRecord
	for cursor.Next(ctx) {
		var rec repository.AnalysisRecord
		if err := cursor.Decode(&rec); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding history record")
			continue
		}
		records = append(records, rec)
	}
	return records, cursor.Err()
}

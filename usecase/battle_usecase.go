package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tubelens/domain/model"
	"tubelens/domain/normalize"
	"tubelens/domain/repository"
	"tubelens/domain/scoring"
	"tubelens/infrastructure/clients/gemini"
	"tubelens/infrastructure/logger"
)

// IBattleUseCase compares two channels head to head.
type IBattleUseCase interface {
	CompareChannels(ctx context.Context, userID, channelAID, channelBID string) (*model.BattleResult, error)
}

// BattleUseCase derives each channel's comparison stats locally, asks the
// model for metric weights, radar dimensions and a narrative, then computes
// power scores and the winner itself. The model never decides the winner.
type BattleUseCase struct {
	youtubeRepo repository.IYouTube
	genAI       repository.IGenAI
	history     repository.IHistory // optional
	events      repository.IEvents  // optional
}

func NewBattleUseCase(youtubeRepo repository.IYouTube, genAI repository.IGenAI, history repository.IHistory, events repository.IEvents) IBattleUseCase {
	return &BattleUseCase{youtubeRepo: youtubeRepo, genAI: genAI, history: history, events: events}
}

func (u *BattleUseCase) CompareChannels(ctx context.Context, userID, channelAID, channelBID string) (*model.BattleResult, error) {
	if channelAID == "" || channelBID == "" {
		return nil, fmt.Errorf("both channel IDs are required")
	}
	if channelAID == channelBID {
		return nil, fmt.Errorf("cannot compare a channel with itself")
	}

	var statsA, statsB model.BattleStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statsA, err = u.channelStats(gctx, channelAID)
		return err
	})
	g.Go(func() error {
		var err error
		statsB, err = u.channelStats(gctx, channelBID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis := u.battleAnalysis(ctx, statsA, statsB)

	statsA.PowerScore = scoring.PowerScore(statsA, statsB, analysis.Weights)
	statsB.PowerScore = scoring.PowerScore(statsB, statsA, analysis.Weights)

	result := &model.BattleResult{
		StatsA:   statsA,
		StatsB:   statsB,
		Winner:   scoring.DecideWinner(statsA.PowerScore, statsB.PowerScore),
		Analysis: analysis,
	}

	if u.history != nil {
		subject := fmt.Sprintf("%s vs %s", statsA.ChannelTitle, statsB.ChannelTitle)
		if err := u.history.Save(ctx, repository.AnalysisRecord{
			UserID:  userID,
			Kind:    "battle",
			Subject: subject,
			Result:  result,
		}); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to save battle history")
		}
		if u.events != nil {
			if err := u.events.PublishAnalysisCompleted(ctx, userID, "battle", subject); err != nil {
				logger.GetLogger().WithField("error", err).Warn("failed to publish battle event")
			}
		}
	}
	return result, nil
}

// channelStats fetches a channel and derives its comparison metrics from a
// recent upload sample.
func (u *BattleUseCase) channelStats(ctx context.Context, channelID string) (model.BattleStats, error) {
	channel, err := u.youtubeRepo.ChannelDetails(ctx, channelID)
	if err != nil {
		return model.BattleStats{}, fmt.Errorf("failed to get channel details: %w", err)
	}
	videos, err := u.youtubeRepo.ChannelVideos(ctx, channelID, recentSampleSize)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("recent uploads unavailable, comparing on channel stats only")
		videos = nil
	}

	var avgViews float64
	if len(videos) > 0 {
		var views float64
		for _, v := range videos {
			views += float64(v.ViewCount)
		}
		avgViews = views / float64(len(videos))
	}

	return model.BattleStats{
		ChannelID:       channel.ID,
		ChannelTitle:    channel.Title,
		Subscribers:     channel.SubscriberCount,
		TotalViews:      channel.ViewCount,
		AvgViews:        avgViews,
		EngagementRate:  scoring.EngagementRate(videos),
		UploadFrequency: scoring.UploadFrequency(videos),
		VideoCount:      channel.VideoCount,
	}, nil
}

// battleAnalysis runs the single model call of a comparison. Radar dimension
// scores pass through the same sanitation as thumbnail sub-scores since the
// model returns them in equally unreliable shapes.
func (u *BattleUseCase) battleAnalysis(ctx context.Context, a, b model.BattleStats) model.BattleAnalysis {
	prompt := fmt.Sprintf(`You are comparing two YouTube channels. Propose per-metric weights (summing to 1), score both channels 0-100 on a few qualitative dimensions, and write a short comparison narrative. Do not declare a winner.
Respond with JSON only, matching exactly:
{"weights": {"subscribers": 0, "totalViews": 0, "avgViews": 0, "engagementRate": 0, "uploadFrequency": 0}, "dimensions": [{"name": "", "scoreA": 0, "scoreB": 0}], "narrative": ""}

Channel A: %s - subscribers %d, total views %d, avg views %.0f, engagement %.4f, uploads/30d %.1f
Channel B: %s - subscribers %d, total views %d, avg views %.0f, engagement %.4f, uploads/30d %.1f`,
		a.ChannelTitle, a.Subscribers, a.TotalViews, a.AvgViews, a.EngagementRate, a.UploadFrequency,
		b.ChannelTitle, b.Subscribers, b.TotalViews, b.AvgViews, b.EngagementRate, b.UploadFrequency)

	text, err := u.genAI.GenerateContent(ctx, prompt)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("battle model call failed, using default weights")
		return model.DefaultBattleAnalysis()
	}
	parsed := gemini.AsObject(gemini.ParseRepairedJSON(text))
	analysis := normalize.Shape(parsed, model.DefaultBattleAnalysis())

	// Zeroed or partial weights would silently skew the power score; any
	// weight set not summing to roughly 1 is replaced wholesale.
	sum := analysis.Weights.Subscribers + analysis.Weights.TotalViews + analysis.Weights.AvgViews +
		analysis.Weights.EngagementRate + analysis.Weights.UploadFrequency
	if sum < 0.99 || sum > 1.01 {
		analysis.Weights = model.DefaultMetricWeights()
	}

	// Sanitize dimension scores the way thumbnail sub-scores are sanitized.
	if parsed != nil {
		if rawDims, ok := parsed["dimensions"].([]interface{}); ok {
			for i := range analysis.Dimensions {
				if i >= len(rawDims) {
					break
				}
				if dim, ok := rawDims[i].(map[string]interface{}); ok {
					analysis.Dimensions[i].ScoreA = scoring.ExtractScore(dim, "scoreA")
					analysis.Dimensions[i].ScoreB = scoring.ExtractScore(dim, "scoreB")
				}
			}
		}
	}
	return analysis
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/domain/normalize"
	"tubelens/domain/repository"
	"tubelens/domain/scoring"
	"tubelens/infrastructure/clients/gemini"
	"tubelens/infrastructure/logger"
)

// recentSampleSize is how many recent uploads feed a channel analysis.
const recentSampleSize = 15

// IAnalyzeUseCase defines the AI analysis and content-generation operations.
// Malformed or missing AI output never surfaces as an error: every operation
// returns its normalized shape with defaults filling the gaps. Only data
// fetch failures (unknown channel, API errors) error out.
type IAnalyzeUseCase interface {
	AnalyzeStrategy(ctx context.Context, userID, channelID string) (model.StrategyResult, error)
	AnalyzeGrowth(ctx context.Context, userID, channelID string) (model.GrowthAnalysis, error)
	ConsultingReport(ctx context.Context, userID, channelID string) (model.ConsultingReport, error)
	CommentSentiment(ctx context.Context, userID, videoID string) (model.CommentSentiment, error)
	AnalyzeThumbnail(ctx context.Context, userID, videoID string) (model.ThumbnailAnalysis, error)
	GenerateShortsScript(ctx context.Context, userID string, req *dto.TopicRequest) (model.ShortsScript, error)
	SuggestTitles(ctx context.Context, userID string, req *dto.TopicRequest) (model.TitleSuggestions, error)
	SuggestThumbnailText(ctx context.Context, userID string, req *dto.TopicRequest) (model.ThumbnailTextIdeas, error)
	AnalyzeTrend(ctx context.Context, userID string, req *dto.TrendRequest) (*dto.TrendResponse, error)
	History(ctx context.Context, userID string, limit int) ([]repository.AnalysisRecord, error)
}

// AnalyzeUseCase wires the YouTube data source, the generative model, the
// collector and the best-effort history/event sinks.
type AnalyzeUseCase struct {
	youtubeRepo repository.IYouTube
	genAI       repository.IGenAI
	videos      IVideoUseCase
	history     repository.IHistory // optional
	events      repository.IEvents  // optional
}

func NewAnalyzeUseCase(
	youtubeRepo repository.IYouTube,
	genAI repository.IGenAI,
	videos IVideoUseCase,
	history repository.IHistory,
	events repository.IEvents,
) IAnalyzeUseCase {
	return &AnalyzeUseCase{
		youtubeRepo: youtubeRepo,
		genAI:       genAI,
		videos:      videos,
		history:     history,
		events:      events,
	}
}

// generate runs one model call and repairs the response into an object.
// Every failure path returns nil, which normalize.Shape turns into defaults.
func (u *AnalyzeUseCase) generate(ctx context.Context, prompt string) map[string]interface{} {
	text, err := u.genAI.GenerateContent(ctx, prompt)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("model call failed, falling back to defaults")
		return nil
	}
	return gemini.AsObject(gemini.ParseRepairedJSON(text))
}

// record persists the analysis to history and publishes the completion event.
// Both sinks are best-effort and never fail the call that produced the result.
func (u *AnalyzeUseCase) record(ctx context.Context, userID, kind, subject string, result interface{}) {
	if u.history != nil {
		if err := u.history.Save(ctx, repository.AnalysisRecord{
			UserID:  userID,
			Kind:    kind,
			Subject: subject,
			Result:  result,
		}); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to save analysis history")
		}
	}
	if u.events != nil {
		if err := u.events.PublishAnalysisCompleted(ctx, userID, kind, subject); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to publish analysis event")
		}
	}
}

// channelDigest fetches a channel and a recent upload sample and renders both
// as the plain-text context block shared by the channel-level prompts.
func (u *AnalyzeUseCase) channelDigest(ctx context.Context, channelID string) (string, *model.ChannelRecord, error) {
	channel, err := u.youtubeRepo.ChannelDetails(ctx, channelID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get channel details: %w", err)
	}
	videos, err := u.youtubeRepo.ChannelVideos(ctx, channelID, recentSampleSize)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("recent uploads unavailable, analyzing channel stats only")
		videos = nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Channel: %s\n", channel.Title)
	fmt.Fprintf(&sb, "Subscribers: %d, Total views: %d, Videos: %d\n",
		channel.SubscriberCount, channel.ViewCount, channel.VideoCount)
	if channel.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", truncate(channel.Description, 300))
	}
	if len(videos) > 0 {
		fmt.Fprintf(&sb, "Engagement rate: %.4f, Uploads per 30 days: %.1f\n",
			scoring.EngagementRate(videos), scoring.UploadFrequency(videos))
		sb.WriteString("Recent uploads:\n")
		sb.WriteString(videosDigest(videos))
	}
	return sb.String(), channel, nil
}

func videosDigest(videos []model.VideoRecord) string {
	var sb strings.Builder
	for _, v := range videos {
		fmt.Fprintf(&sb, "- %q (%s, %d views, %d likes, %d comments, score %.1f)\n",
			v.Title, v.VideoType, v.ViewCount, v.LikeCount, v.CommentCount, v.PopularityScore)
	}
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func (u *AnalyzeUseCase) AnalyzeStrategy(ctx context.Context, userID, channelID string) (model.StrategyResult, error) {
	digest, channel, err := u.channelDigest(ctx, channelID)
	if err != nil {
		return model.StrategyResult{}, err
	}
	prompt := fmt.Sprintf(`You are a YouTube channel strategy consultant. Based on the channel data below, produce a content strategy.
Respond with JSON only, matching exactly:
{"summary": "", "targetAudience": "", "contentIdeas": [""], "postingSchedule": "", "strengths": [""], "weaknesses": [""], "improvements": [""]}

%s`, digest)

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultStrategyResult())
	u.record(ctx, userID, "strategy", channel.Title, result)
	return result, nil
}

func (u *AnalyzeUseCase) AnalyzeGrowth(ctx context.Context, userID, channelID string) (model.GrowthAnalysis, error) {
	digest, channel, err := u.channelDigest(ctx, channelID)
	if err != nil {
		return model.GrowthAnalysis{}, err
	}
	prompt := fmt.Sprintf(`You are a YouTube growth analyst. Diagnose the channel's growth stage from the data below.
Respond with JSON only, matching exactly:
{"currentPhase": "", "growthScore": 0, "insights": [""], "recommendations": [""], "nextMilestone": ""}

%s`, digest)

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultGrowthAnalysis())
	u.record(ctx, userID, "growth", channel.Title, result)
	return result, nil
}

func (u *AnalyzeUseCase) ConsultingReport(ctx context.Context, userID, channelID string) (model.ConsultingReport, error) {
	digest, channel, err := u.channelDigest(ctx, channelID)
	if err != nil {
		return model.ConsultingReport{}, err
	}
	prompt := fmt.Sprintf(`You are a senior YouTube consultant writing a one-off channel review.
Respond with JSON only, matching exactly:
{"overview": "", "strengths": [""], "weaknesses": [""], "improvements": [""], "actionPlan": [""]}

%s`, digest)

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultConsultingReport())
	u.record(ctx, userID, "consulting", channel.Title, result)
	return result, nil
}

func (u *AnalyzeUseCase) CommentSentiment(ctx context.Context, userID, videoID string) (model.CommentSentiment, error) {
	comments, err := u.youtubeRepo.VideoComments(ctx, videoID, 100)
	if err != nil {
		return model.CommentSentiment{}, fmt.Errorf("failed to get video comments: %w", err)
	}
	if len(comments) == 0 {
		return model.DefaultCommentSentiment(), nil
	}

	var sb strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&sb, "- %s\n", truncate(c.Text, 200))
	}
	prompt := fmt.Sprintf(`Classify the sentiment of these YouTube comments. Ratios must sum to 1.
Respond with JSON only, matching exactly:
{"positiveRatio": 0, "negativeRatio": 0, "neutralRatio": 0, "summary": "", "topKeywords": [""], "highlights": [""]}

Comments:
%s`, sb.String())

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultCommentSentiment())
	u.record(ctx, userID, "sentiment", videoID, result)
	return result, nil
}

// AnalyzeThumbnail critiques a video's thumbnail. The overall score is
// recomputed locally from the sanitized sub-scores; the model's own aggregate
// only survives when every sub-score is missing.
func (u *AnalyzeUseCase) AnalyzeThumbnail(ctx context.Context, userID, videoID string) (model.ThumbnailAnalysis, error) {
	video, err := u.videos.GetVideoDetails(ctx, videoID)
	if err != nil {
		return model.ThumbnailAnalysis{}, err
	}
	prompt := fmt.Sprintf(`You are a YouTube thumbnail critic. Score the thumbnail of the video below on four axes, 0-100 each.
Respond with JSON only, matching exactly:
{"scores": {"visibility": 0, "curiosity": 0, "textReadability": 0, "design": 0}, "overallScore": 0, "strengths": [""], "weaknesses": [""], "improvements": [""], "textFeedback": ""}

Video title: %q
Thumbnail URL: %s
Video type: %s, views: %d`, video.Title, video.ThumbnailURL, video.VideoType, video.ViewCount)

	parsed := u.generate(ctx, prompt)
	result := normalize.Shape(parsed, model.DefaultThumbnailAnalysis())

	var rawScores map[string]interface{}
	if parsed != nil {
		rawScores, _ = parsed["scores"].(map[string]interface{})
	}
	result.Scores = model.ThumbnailScores{
		Visibility:      scoring.ExtractScore(rawScores, "visibility"),
		Curiosity:       scoring.ExtractScore(rawScores, "curiosity"),
		TextReadability: scoring.ExtractScore(rawScores, "textReadability"),
		Design:          scoring.ExtractScore(rawScores, "design"),
	}
	result.OverallScore = scoring.ThumbnailOverall(rawScores, float64(result.OverallScore))

	u.record(ctx, userID, "thumbnail", video.Title, result)
	return result, nil
}

func (u *AnalyzeUseCase) GenerateShortsScript(ctx context.Context, userID string, req *dto.TopicRequest) (model.ShortsScript, error) {
	if req == nil || req.Topic == "" {
		return model.ShortsScript{}, fmt.Errorf("topic is required")
	}
	prompt := fmt.Sprintf(`Write a YouTube Shorts script (under 60 seconds) about %q.%s%s
Respond with JSON only, matching exactly:
{"title": "", "hook": "", "scenes": [{"timecode": "", "visual": "", "narration": ""}], "hashtags": [""], "cta": ""}`,
		req.Topic, audienceHint(req), toneHint(req))

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultShortsScript())
	u.record(ctx, userID, "shorts_script", req.Topic, result)
	return result, nil
}

func (u *AnalyzeUseCase) SuggestTitles(ctx context.Context, userID string, req *dto.TopicRequest) (model.TitleSuggestions, error) {
	if req == nil || req.Topic == "" {
		return model.TitleSuggestions{}, fmt.Errorf("topic is required")
	}
	prompt := fmt.Sprintf(`Suggest 5 click-worthy YouTube titles about %q.%s%s
Respond with JSON only, matching exactly:
{"topic": "", "titles": [{"title": "", "reason": "", "score": 0}]}`,
		req.Topic, audienceHint(req), toneHint(req))

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultTitleSuggestions())
	if result.Topic == "" {
		result.Topic = req.Topic
	}
	u.record(ctx, userID, "titles", req.Topic, result)
	return result, nil
}

func (u *AnalyzeUseCase) SuggestThumbnailText(ctx context.Context, userID string, req *dto.TopicRequest) (model.ThumbnailTextIdeas, error) {
	if req == nil || req.Topic == "" {
		return model.ThumbnailTextIdeas{}, fmt.Errorf("topic is required")
	}
	prompt := fmt.Sprintf(`Suggest 5 thumbnail text options for a YouTube video about %q.%s%s
Respond with JSON only, matching exactly:
{"ideas": [{"mainText": "", "subText": "", "style": ""}]}`,
		req.Topic, audienceHint(req), toneHint(req))

	result := normalize.Shape(u.generate(ctx, prompt), model.DefaultThumbnailTextIdeas())
	u.record(ctx, userID, "thumbnail_text", req.Topic, result)
	return result, nil
}

// AnalyzeTrend collects a keyword batch and runs the trend-insight and
// rising-creator enrichments concurrently over it. A branch failing clears
// only its own field; the videos are always returned.
func (u *AnalyzeUseCase) AnalyzeTrend(ctx context.Context, userID string, req *dto.TrendRequest) (*dto.TrendResponse, error) {
	if req == nil || req.Keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	collected, err := u.videos.CollectVideosByKeyword(ctx, &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: req.Keyword, Order: "viewCount"},
		TargetCount:        req.TargetCount,
	}, nil)
	if err != nil {
		return nil, err
	}
	digest := videosDigest(collected.Videos)

	resp := &dto.TrendResponse{
		Videos:         collected.Videos,
		Trend:          model.DefaultTrendInsight(),
		RisingCreators: model.DefaultRisingCreators(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prompt := fmt.Sprintf(`Analyze the trend behind these YouTube search results for %q.
Respond with JSON only, matching exactly:
{"trendSummary": "", "keywords": [""], "opportunities": [""], "risingTopics": [""]}

%s`, req.Keyword, digest)
		resp.Trend = normalize.Shape(u.generate(gctx, prompt), model.DefaultTrendInsight())
		return nil
	})
	g.Go(func() error {
		prompt := fmt.Sprintf(`Identify channels that look like rising creators among these search results for %q.
Respond with JSON only, matching exactly:
{"creators": [{"channelTitle": "", "reason": ""}]}

%s`, req.Keyword, digest)
		resp.RisingCreators = normalize.Shape(u.generate(gctx, prompt), model.DefaultRisingCreators())
		return nil
	})
	// Branches swallow their own failures, so Wait cannot error.
	_ = g.Wait()

	u.record(ctx, userID, "trend", req.Keyword, resp.Trend)
	return resp, nil
}

func (u *AnalyzeUseCase) History(ctx context.Context, userID string, limit int) ([]repository.AnalysisRecord, error) {
	if u.history == nil {
		return nil, nil
	}
	return u.history.ListByUser(ctx, userID, limit)
}

func audienceHint(req *dto.TopicRequest) string {
	if req.Audience == "" {
		return ""
	}
	return fmt.Sprintf(" Target audience: %s.", req.Audience)
}

func toneHint(req *dto.TopicRequest) string {
	if req.Tone == "" {
		return ""
	}
	return fmt.Sprintf(" Tone: %s.", req.Tone)
}

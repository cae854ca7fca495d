package model

// The AI result shapes below are the normalized forms of Gemini responses.
// Each shape has a Default* constructor whose instance is only ever used as a
// merge base: any field the model omits or garbles keeps the default value, so
// the handlers can render every result without nil checks.
//
// Feedback-style lists (strengths, weaknesses, improvements) default to a small
// set of generic phrases instead of empty slices; an empty list renders as a
// "no data" state in the dashboard, which is worse than a generic statement.

// StrategyResult is the channel content-strategy report.
type StrategyResult struct {
	Summary         string   `json:"summary"`
	TargetAudience  string   `json:"targetAudience"`
	ContentIdeas    []string `json:"contentIdeas"`
	PostingSchedule string   `json:"postingSchedule"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Improvements    []string `json:"improvements"`
}

func DefaultStrategyResult() StrategyResult {
	return StrategyResult{
		Summary:         "Analysis unavailable; showing a generic strategy based on channel data.",
		TargetAudience:  "Recent channel audience",
		ContentIdeas:    []string{},
		PostingSchedule: "Two uploads per week recommended",
		Strengths:       defaultStrengths(),
		Weaknesses:      defaultWeaknesses(),
		Improvements:    defaultImprovements(),
	}
}

// GrowthAnalysis is the channel growth diagnosis.
type GrowthAnalysis struct {
	CurrentPhase    string   `json:"currentPhase"`
	GrowthScore     float64  `json:"growthScore"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	NextMilestone   string   `json:"nextMilestone"`
}

func DefaultGrowthAnalysis() GrowthAnalysis {
	return GrowthAnalysis{
		CurrentPhase:    "Growth phase unavailable",
		GrowthScore:     0,
		Insights:        []string{"Not enough recent upload data to analyze."},
		Recommendations: []string{"Keep your upload cadence consistent.", "Double down on topics with high watch time."},
		NextMilestone:   "",
	}
}

// ConsultingReport is the one-off channel consulting result.
type ConsultingReport struct {
	Overview     string   `json:"overview"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
	ActionPlan   []string `json:"actionPlan"`
}

func DefaultConsultingReport() ConsultingReport {
	return ConsultingReport{
		Overview:     "Consulting report could not be generated.",
		Strengths:    defaultStrengths(),
		Weaknesses:   defaultWeaknesses(),
		Improvements: defaultImprovements(),
		ActionPlan:   []string{"Maintain your upload cadence until the next review."},
	}
}

// CommentSentiment summarizes viewer comments on a video.
type CommentSentiment struct {
	PositiveRatio float64  `json:"positiveRatio"`
	NegativeRatio float64  `json:"negativeRatio"`
	NeutralRatio  float64  `json:"neutralRatio"`
	Summary       string   `json:"summary"`
	TopKeywords   []string `json:"topKeywords"`
	Highlights    []string `json:"highlights"`
}

func DefaultCommentSentiment() CommentSentiment {
	return CommentSentiment{
		PositiveRatio: 0,
		NegativeRatio: 0,
		NeutralRatio:  0,
		Summary:       "No comment sentiment result available.",
		TopKeywords:   []string{},
		Highlights:    []string{},
	}
}

// ThumbnailScores holds the four thumbnail sub-scores on a 0-100 scale.
type ThumbnailScores struct {
	Visibility      float64 `json:"visibility"`
	Curiosity       float64 `json:"curiosity"`
	TextReadability float64 `json:"textReadability"`
	Design          float64 `json:"design"`
}

// ThumbnailAnalysis is the thumbnail critique. OverallScore is recomputed from
// sub-scores after normalization whenever the recomputed average is non-zero.
type ThumbnailAnalysis struct {
	Scores       ThumbnailScores `json:"scores"`
	OverallScore int             `json:"overallScore"`
	Strengths    []string        `json:"strengths"`
	Weaknesses   []string        `json:"weaknesses"`
	Improvements []string        `json:"improvements"`
	TextFeedback string          `json:"textFeedback"`
}

func DefaultThumbnailAnalysis() ThumbnailAnalysis {
	return ThumbnailAnalysis{
		Scores:       ThumbnailScores{},
		OverallScore: 0,
		Strengths:    defaultStrengths(),
		Weaknesses:   defaultWeaknesses(),
		Improvements: defaultImprovements(),
		TextFeedback: "No thumbnail text feedback available.",
	}
}

// ShortsScene is a single beat of a shorts script.
type ShortsScene struct {
	Timecode  string `json:"timecode"`
	Visual    string `json:"visual"`
	Narration string `json:"narration"`
}

// ShortsScript is the generated short-form video script.
type ShortsScript struct {
	Title    string        `json:"title"`
	Hook     string        `json:"hook"`
	Scenes   []ShortsScene `json:"scenes"`
	Hashtags []string      `json:"hashtags"`
	CTA      string        `json:"cta"`
}

func DefaultShortsScript() ShortsScript {
	return ShortsScript{
		Title:    "Shorts script",
		Hook:     "",
		Scenes:   []ShortsScene{},
		Hashtags: []string{},
		CTA:      "Like and subscribe for more!",
	}
}

// TitleIdea is a single suggested title with its rationale.
type TitleIdea struct {
	Title  string  `json:"title"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// TitleSuggestions is the generated title list for a topic.
type TitleSuggestions struct {
	Topic  string      `json:"topic"`
	Titles []TitleIdea `json:"titles"`
}

func DefaultTitleSuggestions() TitleSuggestions {
	return TitleSuggestions{Topic: "", Titles: []TitleIdea{}}
}

// ThumbnailTextIdea is one main/sub text pairing for a thumbnail.
type ThumbnailTextIdea struct {
	MainText string `json:"mainText"`
	SubText  string `json:"subText"`
	Style    string `json:"style"`
}

// ThumbnailTextIdeas is the generated set of thumbnail copy options.
type ThumbnailTextIdeas struct {
	Ideas []ThumbnailTextIdea `json:"ideas"`
}

func DefaultThumbnailTextIdeas() ThumbnailTextIdeas {
	return ThumbnailTextIdeas{Ideas: []ThumbnailTextIdea{}}
}

// TrendInsight is the keyword trend summary computed over a video batch.
type TrendInsight struct {
	TrendSummary  string   `json:"trendSummary"`
	Keywords      []string `json:"keywords"`
	Opportunities []string `json:"opportunities"`
	RisingTopics  []string `json:"risingTopics"`
}

func DefaultTrendInsight() TrendInsight {
	return TrendInsight{
		TrendSummary:  "",
		Keywords:      []string{},
		Opportunities: []string{},
		RisingTopics:  []string{},
	}
}

// RisingCreator is one channel flagged as rising within a video batch.
type RisingCreator struct {
	ChannelTitle string `json:"channelTitle"`
	Reason       string `json:"reason"`
}

// RisingCreators is the rising-creator enrichment over a video batch.
type RisingCreators struct {
	Creators []RisingCreator `json:"creators"`
}

func DefaultRisingCreators() RisingCreators {
	return RisingCreators{Creators: []RisingCreator{}}
}

// RadarDimension is one qualitatively scored axis of a channel battle.
type RadarDimension struct {
	Name   string  `json:"name"`
	ScoreA float64 `json:"scoreA"`
	ScoreB float64 `json:"scoreB"`
}

// BattleAnalysis is the AI side of a channel comparison: metric weights, radar
// dimensions and narrative. The winner is never taken from this shape.
type BattleAnalysis struct {
	Weights    MetricWeights    `json:"weights"`
	Dimensions []RadarDimension `json:"dimensions"`
	Narrative  string           `json:"narrative"`
}

func DefaultBattleAnalysis() BattleAnalysis {
	return BattleAnalysis{
		Weights:    DefaultMetricWeights(),
		Dimensions: []RadarDimension{},
		Narrative:  "",
	}
}

func defaultStrengths() []string {
	return []string{
		"Uploads are consistent.",
		"Content stays on a coherent core topic.",
	}
}

func defaultWeaknesses() []string {
	return []string{
		"Viewer engagement prompts may be lacking.",
	}
}

func defaultImprovements() []string {
	return []string{
		"Strengthen the hook in the first seconds.",
		"Tighten the link between thumbnail and title.",
	}
}

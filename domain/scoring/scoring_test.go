package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tubelens/domain/model"
	"tubelens/domain/scoring"
)

func TestPopularityScore(t *testing.T) {
	assert.Equal(t, 0.0, scoring.PopularityScore(0, 0, 0))
	// One "typical magnitude" of each counter contributes its full weight.
	assert.InDelta(t, 1.0, scoring.PopularityScore(10000, 100, 10), 1e-9)
	assert.InDelta(t, 0.6, scoring.PopularityScore(10000, 0, 0), 1e-9)
	assert.InDelta(t, 0.3, scoring.PopularityScore(0, 100, 0), 1e-9)
	assert.InDelta(t, 0.1, scoring.PopularityScore(0, 0, 10), 1e-9)
}

func TestPopularityScore_Cap(t *testing.T) {
	assert.Equal(t, 100.0, scoring.PopularityScore(100_000_000, 0, 0))
	assert.Equal(t, 100.0, scoring.PopularityScore(100_000_000, 5_000_000, 900_000))
}

func TestPopularityScore_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 0.0, scoring.PopularityScore(-50_000, 0, 0))
	assert.Equal(t, 0.0, scoring.PopularityScore(-50_000, -1_000, -100))
}

func TestExtractScore_Aliases(t *testing.T) {
	obj := map[string]interface{}{
		"readability": float64(70),
		"composition": float64(60),
	}
	assert.Equal(t, 70.0, scoring.ExtractScore(obj, "textReadability"))
	assert.Equal(t, 60.0, scoring.ExtractScore(obj, "design"))
}

func TestExtractScore_CaseInsensitive(t *testing.T) {
	obj := map[string]interface{}{"Visibility": float64(80)}
	assert.Equal(t, 80.0, scoring.ExtractScore(obj, "visibility"))
}

func TestExtractScore_NumericStrings(t *testing.T) {
	obj := map[string]interface{}{
		"visibility":      "85점",
		"curiosity":       "about 70",
		"textReadability": "n/a",
		"design":          true,
	}
	assert.Equal(t, 85.0, scoring.ExtractScore(obj, "visibility"))
	assert.Equal(t, 70.0, scoring.ExtractScore(obj, "curiosity"))
	assert.Equal(t, 0.0, scoring.ExtractScore(obj, "textReadability"))
	assert.Equal(t, 0.0, scoring.ExtractScore(obj, "design"))
}

func TestExtractScore_Missing(t *testing.T) {
	assert.Equal(t, 0.0, scoring.ExtractScore(nil, "visibility"))
	assert.Equal(t, 0.0, scoring.ExtractScore(map[string]interface{}{}, "visibility"))
}

func TestThumbnailOverall_RecomputesFromSubScores(t *testing.T) {
	sub := map[string]interface{}{
		"visibility":      float64(80),
		"curiosity":       float64(70),
		"textReadability": float64(90),
		"design":          float64(60),
	}
	// The model claimed 0 overall; the recomputed mean wins.
	assert.Equal(t, 75, scoring.ThumbnailOverall(sub, 0))
	// A non-zero recomputed mean also beats a contradictory model value.
	assert.Equal(t, 75, scoring.ThumbnailOverall(sub, 42))
}

func TestThumbnailOverall_FallsBackToModelValue(t *testing.T) {
	empty := map[string]interface{}{}
	assert.Equal(t, 55, scoring.ThumbnailOverall(empty, 55))
	assert.Equal(t, 0, scoring.ThumbnailOverall(nil, 0))
}

func TestPowerScore_IdenticalChannelsSplitEvenly(t *testing.T) {
	stats := model.BattleStats{
		Subscribers:     1000,
		TotalViews:      50000,
		AvgViews:        2000,
		EngagementRate:  0.05,
		UploadFrequency: 4,
	}
	w := model.DefaultMetricWeights()
	a := scoring.PowerScore(stats, stats, w)
	b := scoring.PowerScore(stats, stats, w)
	assert.Equal(t, 50.0, a)
	assert.Equal(t, a, b)
	assert.Equal(t, "Tie", scoring.DecideWinner(a, b))
}

func TestPowerScore_DominantChannelWins(t *testing.T) {
	strong := model.BattleStats{Subscribers: 10000, TotalViews: 500000, AvgViews: 20000, EngagementRate: 0.08, UploadFrequency: 8}
	weak := model.BattleStats{Subscribers: 100, TotalViews: 5000, AvgViews: 200, EngagementRate: 0.01, UploadFrequency: 1}
	w := model.DefaultMetricWeights()

	powerStrong := scoring.PowerScore(strong, weak, w)
	powerWeak := scoring.PowerScore(weak, strong, w)
	assert.Greater(t, powerStrong, powerWeak)
	assert.Equal(t, "A", scoring.DecideWinner(powerStrong, powerWeak))
	assert.Equal(t, "B", scoring.DecideWinner(powerWeak, powerStrong))
}

func TestPowerScore_BothZeroMetricsSplit(t *testing.T) {
	// Two empty channels share every metric 50-50.
	w := model.DefaultMetricWeights()
	assert.Equal(t, 50.0, scoring.PowerScore(model.BattleStats{}, model.BattleStats{}, w))
}

func TestEngagementRate(t *testing.T) {
	videos := []model.VideoRecord{
		{ViewCount: 1000, LikeCount: 40, CommentCount: 10},
		{ViewCount: 1000, LikeCount: 40, CommentCount: 10},
	}
	assert.InDelta(t, 0.05, scoring.EngagementRate(videos), 1e-9)
	assert.Equal(t, 0.0, scoring.EngagementRate(nil))
	assert.Equal(t, 0.0, scoring.EngagementRate([]model.VideoRecord{{ViewCount: 0}}))
}

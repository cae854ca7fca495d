// Package scoring holds the pure numeric functions behind the dashboard's
// derived metrics. The constants here are part of the observable contract
// (exported data, progress-bar percentages) and must not be retuned.
package scoring

import (
	"math"
	"strings"
	"unicode"

	"tubelens/domain/model"
)

// PopularityScore maps raw video counters onto a 0-100 scale: views weigh
// 60%, likes 30%, comments 10%, each pre-scaled by a typical-magnitude
// divisor, clamped to [0, 100].
func PopularityScore(viewCount, likeCount, commentCount int64) float64 {
	score := float64(viewCount)/10000*0.6 +
		float64(likeCount)/100*0.3 +
		float64(commentCount)/10*0.1
	return math.Min(math.Max(score, 0), 100)
}

// scoreAliases maps canonical thumbnail sub-score keys to the spellings
// models have been observed to use. Lookup is case-insensitive.
var scoreAliases = map[string][]string{
	"visibility":      {"visibility"},
	"curiosity":       {"curiosity"},
	"textReadability": {"textReadability", "readability"},
	"design":          {"design", "composition"},
}

// ExtractScore pulls a numeric sub-score out of untrusted model output.
// Numbers pass through; numeric-looking strings contribute their first digit
// run; anything else is 0.
func ExtractScore(obj map[string]interface{}, canonical string) float64 {
	if obj == nil {
		return 0
	}
	aliases, ok := scoreAliases[canonical]
	if !ok {
		aliases = []string{canonical}
	}
	for key, val := range obj {
		for _, alias := range aliases {
			if strings.EqualFold(key, alias) {
				return sanitizeScore(val)
			}
		}
	}
	return 0
}

func sanitizeScore(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return firstDigitRun(n)
	default:
		return 0
	}
}

func firstDigitRun(s string) float64 {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(s[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(s[start:])
	}
	return 0
}

func parseDigits(s string) float64 {
	var n float64
	for _, r := range s {
		n = n*10 + float64(r-'0')
	}
	return n
}

// ThumbnailOverall recomputes a thumbnail's overall score from its four
// sanitized sub-scores. Models sometimes return a zero or inconsistent
// aggregate alongside valid sub-scores, so the recomputed average wins
// whenever it is non-zero.
func ThumbnailOverall(sub map[string]interface{}, modelOverall float64) int {
	avg := math.Round((ExtractScore(sub, "visibility") +
		ExtractScore(sub, "curiosity") +
		ExtractScore(sub, "textReadability") +
		ExtractScore(sub, "design")) / 4)
	if avg > 0 {
		return int(avg)
	}
	return int(modelOverall)
}

// PowerScore composes a channel's comparative ranking score from its share of
// each metric relative to the opponent, weighted per metric. Shares are on a
// 0-100 scale, so two identical channels both score 50.
func PowerScore(own, opponent model.BattleStats, w model.MetricWeights) float64 {
	score := w.Subscribers*share(float64(own.Subscribers), float64(opponent.Subscribers)) +
		w.TotalViews*share(float64(own.TotalViews), float64(opponent.TotalViews)) +
		w.AvgViews*share(own.AvgViews, opponent.AvgViews) +
		w.EngagementRate*share(own.EngagementRate, opponent.EngagementRate) +
		w.UploadFrequency*share(own.UploadFrequency, opponent.UploadFrequency)
	return math.Round(score*100) / 100
}

func share(a, b float64) float64 {
	if a <= 0 && b <= 0 {
		return 50
	}
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	return a / (a + b) * 100
}

// DecideWinner compares two resolved power scores. "Tie" only on exact
// equality; the model's own winner claim is never consulted.
func DecideWinner(powerA, powerB float64) string {
	switch {
	case powerA > powerB:
		return "A"
	case powerB > powerA:
		return "B"
	default:
		return "Tie"
	}
}

// EngagementRate is (avg likes + avg comments) / avg views over a sample.
func EngagementRate(videos []model.VideoRecord) float64 {
	if len(videos) == 0 {
		return 0
	}
	var views, likes, comments float64
	for _, v := range videos {
		views += float64(v.ViewCount)
		likes += float64(v.LikeCount)
		comments += float64(v.CommentCount)
	}
	if views == 0 {
		return 0
	}
	return (likes + comments) / views
}

// UploadFrequency is uploads per 30-day window across the observed sample.
func UploadFrequency(videos []model.VideoRecord) float64 {
	if len(videos) == 0 {
		return 0
	}
	oldest := videos[0].PublishedAt
	newest := videos[0].PublishedAt
	for _, v := range videos[1:] {
		if v.PublishedAt.Before(oldest) {
			oldest = v.PublishedAt
		}
		if v.PublishedAt.After(newest) {
			newest = v.PublishedAt
		}
	}
	days := newest.Sub(oldest).Hours() / 24
	if days < 1 {
		days = 1
	}
	return float64(len(videos)) / days * 30
}

package scoring

import (
	"strings"
	"unicode"

	"tubelens/domain/model"
)

// ParseISODuration converts an ISO-8601 duration string as returned by the
// videos API ("PT1H2M3S") into total seconds. Missing components count as 0;
// unparseable input yields 0.
func ParseISODuration(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	idx := strings.Index(s, "T")
	if idx < 0 {
		// Day-only durations ("P1D") carry no time part.
		if strings.HasPrefix(s, "P") {
			return daysPart(s) * 86400
		}
		return 0
	}
	seconds := daysPart(s[:idx]) * 86400
	var digits strings.Builder
	for _, r := range s[idx+1:] {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		n := atoiSafe(digits.String())
		digits.Reset()
		switch r {
		case 'H':
			seconds += n * 3600
		case 'M':
			seconds += n * 60
		case 'S':
			seconds += n
		}
	}
	return seconds
}

func daysPart(s string) int {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		} else if r == 'D' {
			return atoiSafe(digits.String())
		} else {
			digits.Reset()
		}
	}
	return 0
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// ClassifyVideoType buckets a video by duration: 60 seconds or less is a short.
func ClassifyVideoType(durationSeconds int) model.VideoType {
	if durationSeconds <= 60 {
		return model.VideoTypeShort
	}
	return model.VideoTypeRegular
}

package gemini

import (
	"encoding/json"
	"strings"

	"tubelens/infrastructure/logger"
)

// ParseRepairedJSON extracts and parses the JSON object or array buried in a
// free-form model response. Models wrap answers in markdown fences, prose,
// comments and "..." omission markers, and occasionally emit literal control
// characters inside string values; all of that is repaired before parsing.
// Returns nil when no usable JSON can be recovered; callers treat nil as "no
// AI output" and fall back to defaults. It never panics.
func ParseRepairedJSON(raw string) interface{} {
	text := stripFences(raw)

	start, opener := firstBracket(text)
	if start < 0 {
		return nil
	}
	closer := byte('}')
	if opener == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		// No closing bracket after the opener: truncated output. Guessing a
		// close would fabricate data, so give up instead.
		return nil
	}
	text = text[start : end+1]

	text = cleanStructure(text)
	text = dropTrailingCommas(text)

	var out interface{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		logger.GetLogger().WithField("error", err).Warn("gemini: response not parseable as JSON after repair")
		return nil
	}
	switch out.(type) {
	case map[string]interface{}, []interface{}:
		return out
	default:
		return nil
	}
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "\n")
	s = strings.ReplaceAll(s, "```JSON", "\n")
	s = strings.ReplaceAll(s, "```", "\n")
	return s
}

func firstBracket(s string) (int, byte) {
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			return i, s[i]
		}
	}
	return -1, 0
}

// cleanStructure walks the candidate span once, tracking string-literal
// boundaries by backslash parity: a quote preceded by an even number of
// backslashes toggles the in-string state, an odd number means it is escaped.
// Outside strings it drops // and /* */ comments and "..." omission markers;
// inside strings it escapes literal control characters.
func cleanStructure(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '"':
				if backslashRun(s, i)%2 == 0 {
					inString = false
				}
				b.WriteByte(c)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				b.WriteByte(c)
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++ // skip the trailing '/'
		case c == '.' && i+2 < len(s) && s[i+1] == '.' && s[i+2] == '.':
			for i+1 < len(s) && s[i+1] == '.' {
				i++
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// backslashRun counts consecutive backslashes immediately before position i.
func backslashRun(s string, i int) int {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n
}

// dropTrailingCommas removes commas that directly precede a closing bracket,
// again skipping over string literals.
func dropTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '"' && backslashRun(s, i)%2 == 0 {
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case ',':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // trailing comma: drop it
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// AsObject narrows a repaired parse to an object, for callers that expect one.
func AsObject(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

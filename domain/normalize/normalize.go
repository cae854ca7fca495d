// Package normalize merges partially-trusted AI output over canonical default
// objects so every field the dashboard depends on is always present.
package normalize

import (
	"encoding/json"
	"errors"

	"tubelens/infrastructure/logger"
)

// Merge recursively merges parsed over defaults, keyed by the fields defined
// in defaults:
//   - scalar fields take the parsed value whenever the key is present
//   - array fields take the parsed value only when it actually is an array
//   - nested object fields recurse with the nested default as the base
//
// Keys present in parsed but absent from defaults are dropped; the defaults
// define the contract. Neither input map is mutated.
func Merge(parsed, defaults map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(defaults))
	for key, defVal := range defaults {
		pv, ok := valueForKey(parsed, key)
		if !ok {
			out[key] = defVal
			continue
		}
		switch dv := defVal.(type) {
		case map[string]interface{}:
			pm, isMap := pv.(map[string]interface{})
			if !isMap {
				out[key] = dv
				continue
			}
			out[key] = Merge(pm, dv)
		case []interface{}:
			pa, isArr := pv.([]interface{})
			if !isArr {
				out[key] = dv
				continue
			}
			// Feedback-style lists default to curated phrases; an empty model
			// answer must not blank them out.
			if len(pa) == 0 && len(dv) > 0 {
				out[key] = dv
				continue
			}
			out[key] = pa
		default:
			// Scalars are taken as-is even when mistyped; consumers coerce.
			out[key] = pv
		}
	}
	return out
}

func valueForKey(parsed map[string]interface{}, key string) (interface{}, bool) {
	if parsed == nil {
		return nil, false
	}
	v, ok := parsed[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Shape merges parsed over the given default instance and returns the typed
// result. Shape(nil, defaults) always equals defaults. Merge failures fall
// back to the defaults rather than erroring; bad AI output is never fatal.
func Shape[T any](parsed map[string]interface{}, defaults T) T {
	if parsed == nil {
		return defaults
	}
	base, err := toMap(defaults)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("normalize: defaults not representable as object")
		return defaults
	}
	merged := Merge(parsed, base)
	raw, err := json.Marshal(merged)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("normalize: merged object not serializable")
		return defaults
	}
	out := defaults
	if err := json.Unmarshal(raw, &out); err != nil {
		// A type error means a single field carried a wrong-typed value; the
		// decoder has still populated every compatible field, and the mistyped
		// one keeps its default. Anything else reverts to defaults wholesale.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			logger.GetLogger().WithField("error", err).Warn("normalize: merged object rejected by shape, using defaults")
			return defaults
		}
		logger.GetLogger().WithField("field", typeErr.Field).Debug("normalize: dropped mistyped field")
	}
	return out
}

func toMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

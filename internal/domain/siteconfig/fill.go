package siteconfig

// MergeMode says how a stored value combines with its default.
type MergeMode int

const (
	// MergeDeep fills keys that are missing or null in the stored object
	// from the default object, recursively. Extra stored keys are kept.
	MergeDeep MergeMode = iota
	// MergeReplace keeps the stored value as-is when present.
	MergeReplace
)

func (m MergeMode) String() string {
	if m == MergeDeep {
		return "deep"
	}
	return "replace"
}

// fieldModes pins the merge mode of the top-level sections. Paths that are not
// listed fall back to MergeDeep for objects and MergeReplace for anything else.
var fieldModes = map[string]MergeMode{
	"shopInfo":         MergeDeep,
	"shopInfo.theme":   MergeDeep,
	"contactInfo":      MergeDeep,
	"adminSettings":    MergeReplace, // free-form label dictionaries
	"pageContent":      MergeReplace,
	"socialMediaLinks": MergeReplace,
	"categories":       MergeReplace,
	"farms":            MergeReplace,
	"products":         MergeReplace,
	"pages":            MergeReplace,
}

// ModeFor returns the merge mode applied at path for the given default value.
func ModeFor(path string, def any) MergeMode {
	if m, ok := fieldModes[path]; ok {
		return m
	}
	if _, ok := def.(map[string]any); ok {
		return MergeDeep
	}
	return MergeReplace
}

// Fill returns stored completed with defaults. Neither input is modified.
//
// A value is taken from defaults when the stored one is missing, null, or of
// a different JSON kind than the default. Lists are never merged element-wise:
// a stored list, even an empty one, wins over the default list.
func Fill(stored, defaults map[string]any) map[string]any {
	return fillObject("", stored, defaults)
}

func fillObject(prefix string, stored, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(stored))
	for k, v := range stored {
		if v != nil {
			out[k] = cloneValue(v)
		}
	}
	for k, def := range defaults {
		out[k] = fillValue(joinPath(prefix, k), stored[k], def)
	}
	return out
}

func fillValue(path string, stored, def any) any {
	if def == nil {
		return cloneValue(stored)
	}
	if stored == nil || jsonKind(stored) != jsonKind(def) {
		return cloneValue(def)
	}
	defObj, ok := def.(map[string]any)
	if !ok || ModeFor(path, def) == MergeReplace {
		return cloneValue(stored)
	}
	return fillObject(path, stored.(map[string]any), defObj)
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int64, int32:
		return "number"
	case nil:
		return "null"
	default:
		return "other"
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return t
	}
}

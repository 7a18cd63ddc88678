package ghtools

import "fmt"

func strArg(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}

func boolArg(params map[string]interface{}, key string) bool {
	b, _ := params[key].(bool)
	return b
}

// intArg reads a numeric argument. JSON-decoded numbers arrive as float64;
// schema defaults may be plain ints.
func intArg(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return fallback
}

func strPtr(params map[string]interface{}, key string) *string {
	if v, ok := params[key].(string); ok {
		return &v
	}
	return nil
}

func intPtr(params map[string]interface{}, key string) *int {
	switch v := params[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	}
	return nil
}

func toStringSlice(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringSlicePtr distinguishes an absent list argument from an empty one:
// absent means leave unchanged, empty means clear.
func stringSlicePtr(params map[string]interface{}, key string) *[]string {
	raw, present := params[key]
	if !present {
		return nil
	}
	out := toStringSlice(raw)
	if out == nil {
		out = []string{}
	}
	return &out
}

func toSettingsMap(value interface{}) (map[string]interface{}, error) {
	m, ok := value.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil, fmt.Errorf("settings must be a non-empty object")
	}
	return m, nil
}

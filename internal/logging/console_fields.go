package logging

import "strings"

type infoField struct {
	label string
	value string
}

// Highlighted keys print first, in this order.
var infoHighlightKeys = []string{
	FieldEventType,
	FieldLocation,
	"label",
	"status",
	"tier",
	"lat",
	"lon",
	"error",
	FieldErrorHint,
	FieldImpact,
	"episodes",
	"resolved",
	"unresolved",
}

func selectFields(attrs []kv, includeDebug bool) []infoField {
	if len(attrs) == 0 {
		return nil
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if used[idx] || attr.key != key {
				continue
			}
			used[idx] = true
			result = append(result, infoField{label: displayLabel(attr.key), value: fieldValue(attr.value)})
			break
		}
	}
	for idx, attr := range attrs {
		if used[idx] {
			continue
		}
		if !includeDebug && isDebugOnlyKey(attr.key) {
			continue
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: fieldValue(attr.value)})
	}
	return result
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldSessionID, FieldCorrelationID:
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_url")
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldImpact:
		return "Impact"
	case "lat":
		return "Latitude"
	case "lon":
		return "Longitude"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}

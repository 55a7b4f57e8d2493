package reago

import "reflect"

// defaultEquals is the equality predicate memos use unless overridden
// with WithEquals. Common comparable types use ==; everything else
// falls back to reflect.DeepEqual, which is correct for slices, maps
// and structs but can be expensive — supply a custom predicate for hot
// memos over large values.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}

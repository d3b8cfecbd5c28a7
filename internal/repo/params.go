package repo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tbourn/go-news-api/internal/apperr"
)

// intParam binds a value to an integer placeholder the way PostgreSQL casts
// text parameters: integer literals (optionally surrounded by spaces) and
// integral JSON numbers pass, nil binds as NULL, anything else is rejected
// with an invalid-text-representation StoreError. SQLite would otherwise
// compare the raw text and silently match nothing.
func intParam(name string, v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
		if x != math.Trunc(x) || x >= 1<<63 || x < -(1<<63) {
			return nil, apperr.InvalidInput(name, v)
		}
		return int64(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return nil, apperr.InvalidInput(name, v)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, apperr.InvalidInput(name, v)
		}
		return n, nil
	default:
		return nil, apperr.InvalidInput(name, v)
	}
}

// idParam binds a path identifier. Unlike intParam it never yields NULL.
func idParam(name, raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput(name, raw)
	}
	return n, nil
}

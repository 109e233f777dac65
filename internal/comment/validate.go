package comment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrMissingFields    = errors.New("missing fields")
	ErrHandleNotAllowed = errors.New("handle not allowed")
)

// bannedHandle is compared against the normalized handle.
const bannedHandle = "hacker"

// Validate checks a raw handle/text pair. Values may be nil, strings, JSON
// fragments or scalars; they are coerced to text and trimmed. The returned
// Draft keeps the trimmed values as submitted.
func Validate(handle, text any) (Draft, error) {
	h := Trim(Coerce(handle))
	t := Trim(Coerce(text))

	if h == "" || t == "" {
		return Draft{}, ErrMissingFields
	}

	if NormalizeHandle(h) == bannedHandle {
		return Draft{}, ErrHandleNotAllowed
	}

	return Draft{Handle: h, Text: t}, nil
}

// Trim strips leading and trailing white space, including the U+FEFF byte
// order mark that browsers treat as white space.
func Trim(s string) string {
	return strings.TrimFunc(s, isTrimmable)
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// NormalizeHandle lowercases a handle and strips one leading '@'.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.ToLower(handle), "@")
}

// Coerce converts an arbitrary value to text. nil and JSON null become "".
// A JSON string fragment is unquoted; any other fragment keeps its JSON text.
func Coerce(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.RawMessage:
		return coerceRaw(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func coerceRaw(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}

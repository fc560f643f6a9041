package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON means a model reply held no JSON object.
var ErrNoJSON = errors.New("llm: no JSON object in reply")

// ParseJSON decodes the outermost JSON object of a model reply, ignoring
// markdown fences or prose around it.
func ParseJSON[T any](reply string) (T, error) {
	var out T
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end < start {
		return out, ErrNoJSON
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &out); err != nil {
		return out, fmt.Errorf("llm: decode reply: %w", err)
	}
	return out, nil
}

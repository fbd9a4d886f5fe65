package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"kb-assessor/models"
	"kb-assessor/repository"
)

// maxChatAttempts bounds the exchange at one repair round-trip: if the second
// reply still is not the requested JSON object, the run fails.
const maxChatAttempts = 2

// maxScanDepth caps the fallback walk over the provider response.
const maxScanDepth = 32

// codeFencePattern strips a markdown fence wrapping the whole reply. Models
// routinely fence JSON even when told not to.
var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\n(.*)\n```$")

// requiredKey names a key the model must return, with the type hint quoted in
// the repair message.
type requiredKey struct {
	Name string
	Hint string
}

// requestStructured drives the chat exchange until the model returns a JSON
// object carrying both required keys. A malformed first reply is answered
// with one correction message that carries the model's own reply back; a
// malformed second reply fails the exchange with the raw content attached so
// the operator can see what came back.
func requestStructured(
	ctx context.Context,
	llm repository.LLMAPIRepository,
	logger *slog.Logger,
	logReplies bool,
	label, articleNumber string,
	messages []models.ChatMessage,
	first, second requiredKey,
) (map[string]any, error) {
	for attempt := 1; ; attempt++ {
		response, err := llm.Chat(ctx, messages)
		if err != nil {
			return nil, err
		}

		content := extractContent(response)
		if strings.TrimSpace(content) == "" {
			dump, _ := json.Marshal(response)

			logger.ErrorContext(ctx, "llm response missing content",
				"label", label,
				"article", articleNumber,
				"attempt", attempt,
				"response", string(dump))

			return nil, fmt.Errorf("%w: llm response missing content", models.ErrModelOutput)
		}

		if logReplies {
			logger.InfoContext(ctx, "llm reply",
				"label", label,
				"article", articleNumber,
				"attempt", attempt,
				"content", content)
		}

		decoded, err := decodeStructured(content, first, second)
		if err == nil {
			return decoded, nil
		}

		if attempt >= maxChatAttempts {
			return nil, fmt.Errorf("%w: %v Raw response: %s", models.ErrModelOutput, err, content)
		}

		logger.WarnContext(ctx, "llm reply rejected, requesting repair",
			"label", label,
			"article", articleNumber,
			"error", err)

		messages = append(messages,
			models.ChatMessage{Role: models.RoleAssistant, Content: content},
			models.ChatMessage{Role: models.RoleUser, Content: repairPrompt(first, second)},
		)
	}
}

func repairPrompt(first, second requiredKey) string {
	return fmt.Sprintf(
		"Your previous reply was not valid JSON. Respond again with ONLY a valid JSON object containing the keys %s (%s) and %s (%s). Do not include any extra commentary.",
		first.Name, first.Hint, second.Name, second.Hint,
	)
}

// extractContent pulls the assistant text out of the provider response,
// trying the well-known shapes in order before falling back to a bounded
// walk for any non-blank "content" or "text" string.
func extractContent(response map[string]any) string {
	if choice := indexSlice(response["choices"], 0); choice != nil {
		if s, ok := lookup(choice, "message", "content").(string); ok {
			return s
		}

		if s, ok := choice["text"].(string); ok {
			return s
		}
	}

	if output := indexSlice(response["output"], 0); output != nil {
		if s, ok := output["content"].(string); ok {
			return s
		}

		if part := indexSlice(output["content"], 0); part != nil {
			if s, ok := part["text"].(string); ok {
				return s
			}
		}
	}

	if result := indexSlice(response["results"], 0); result != nil {
		if output := indexSlice(result["output"], 0); output != nil {
			if s, ok := output["content"].(string); ok {
				return s
			}
		}
	}

	return scanForText(response, 0)
}

// indexSlice returns element i of v when v is a JSON array of objects.
func indexSlice(v any, i int) map[string]any {
	arr, ok := v.([]any)
	if !ok || i >= len(arr) {
		return nil
	}

	m, _ := arr[i].(map[string]any)

	return m
}

// lookup walks nested JSON objects by key, returning nil on any miss.
func lookup(m map[string]any, keys ...string) any {
	var current any = m

	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		current = obj[key]
	}

	return current
}

// scanForText is the last-resort walk: depth-first with sorted keys so the
// result is deterministic regardless of map iteration order.
func scanForText(node any, depth int) string {
	if depth > maxScanDepth {
		return ""
	}

	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			if k == "content" || k == "text" {
				if s, ok := v[k].(string); ok && strings.TrimSpace(s) != "" {
					return s
				}
			}
		}

		for _, k := range keys {
			if s := scanForText(v[k], depth+1); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range v {
			if s := scanForText(item, depth+1); s != "" {
				return s
			}
		}
	}

	return ""
}

// decodeStructured parses the reply as a JSON object and requires both keys
// to be present. A surrounding markdown fence is tolerated.
func decodeStructured(content string, keys ...requiredKey) (map[string]any, error) {
	content = strings.TrimSpace(content)

	if m := codeFencePattern.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("llm returned invalid JSON: %v.", err)
	}

	for _, key := range keys {
		if _, ok := decoded[key.Name]; !ok {
			return nil, fmt.Errorf("llm response missing required keys.")
		}
	}

	return decoded, nil
}

// coerceBool applies loose truthiness to whatever the model put in a boolean
// slot.
func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		s := strings.TrimSpace(t)
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	default:
		return false
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}

// coerceStringList accepts an array of anything, or a single bare string.
func coerceStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, coerceString(item))
		}

		return out
	case string:
		return []string{t}
	default:
		return []string{}
	}
}

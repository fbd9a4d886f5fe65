package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		response map[string]any
		want     string
	}{
		"chat completion shape": {
			response: map[string]any{
				"choices": []any{
					map[string]any{"message": map[string]any{"content": "hello"}},
				},
			},
			want: "hello",
		},
		"legacy completion shape": {
			response: map[string]any{
				"choices": []any{
					map[string]any{"text": "legacy"},
				},
			},
			want: "legacy",
		},
		"responses shape with string content": {
			response: map[string]any{
				"output": []any{
					map[string]any{"content": "direct"},
				},
			},
			want: "direct",
		},
		"responses shape with content parts": {
			response: map[string]any{
				"output": []any{
					map[string]any{"content": []any{
						map[string]any{"text": "nested part"},
					}},
				},
			},
			want: "nested part",
		},
		"results wrapper shape": {
			response: map[string]any{
				"results": []any{
					map[string]any{"output": []any{
						map[string]any{"content": "wrapped"},
					}},
				},
			},
			want: "wrapped",
		},
		"fallback walk finds buried text": {
			response: map[string]any{
				"data": map[string]any{
					"nested": map[string]any{"text": "buried"},
				},
			},
			want: "buried",
		},
		"fallback skips blank strings": {
			response: map[string]any{
				"a": map[string]any{"content": "   "},
				"b": map[string]any{"text": "found"},
			},
			want: "found",
		},
		"nothing extractable": {
			response: map[string]any{"usage": map[string]any{"tokens": float64(12)}},
			want:     "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, extractContent(tc.response))
		})
	}
}

func TestScanForTextDepthCap(t *testing.T) {
	t.Parallel()

	// Build a chain deeper than the cap with the value at the bottom.
	leaf := map[string]any{"text": "too deep"}

	node := any(leaf)
	for i := 0; i < maxScanDepth+2; i++ {
		node = map[string]any{"wrap": node}
	}

	assert.Equal(t, "", scanForText(node, 0))
}

func TestDecodeStructured(t *testing.T) {
	t.Parallel()

	verdictKey := requiredKey{Name: "verdict_current", Hint: "boolean"}
	recsKey := requiredKey{Name: "recommendations", Hint: "array of short strings"}

	t.Run("plain object", func(t *testing.T) {
		t.Parallel()

		decoded, err := decodeStructured(`{"verdict_current": true, "recommendations": []}`, verdictKey, recsKey)
		require.NoError(t, err)
		assert.Equal(t, true, decoded["verdict_current"])
	})

	t.Run("fenced object", func(t *testing.T) {
		t.Parallel()

		content := "```json\n{\"verdict_current\": false, \"recommendations\": [\"a\"]}\n```"

		decoded, err := decodeStructured(content, verdictKey, recsKey)
		require.NoError(t, err)
		assert.Equal(t, false, decoded["verdict_current"])
	})

	t.Run("fence without language tag", func(t *testing.T) {
		t.Parallel()

		content := "```\n{\"verdict_current\": true, \"recommendations\": []}\n```"

		_, err := decodeStructured(content, verdictKey, recsKey)
		require.NoError(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := decodeStructured("this is not json", verdictKey, recsKey)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("missing required key", func(t *testing.T) {
		t.Parallel()

		_, err := decodeStructured(`{"verdict_current": true}`, verdictKey, recsKey)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required keys")
	})

	t.Run("json array is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := decodeStructured(`[1, 2, 3]`, verdictKey, recsKey)
		require.Error(t, err)
	})
}

func TestCoerceBool(t *testing.T) {
	t.Parallel()

	assert.True(t, coerceBool(true))
	assert.False(t, coerceBool(false))
	assert.True(t, coerceBool(float64(1)))
	assert.False(t, coerceBool(float64(0)))
	assert.True(t, coerceBool("yes"))
	assert.False(t, coerceBool(""))
	assert.False(t, coerceBool("0"))
	assert.False(t, coerceBool("false"))
	assert.False(t, coerceBool(nil))
}

func TestCoerceStringList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, coerceStringList([]any{"a", "b"}))
	assert.Equal(t, []string{"a", "2"}, coerceStringList([]any{"a", float64(2)}))
	assert.Equal(t, []string{"solo"}, coerceStringList("solo"))
	assert.Empty(t, coerceStringList(nil))
	assert.Empty(t, coerceStringList(map[string]any{"x": "y"}))
}

func TestRepairPrompt(t *testing.T) {
	t.Parallel()

	got := repairPrompt(
		requiredKey{Name: "verdict_current", Hint: "boolean"},
		requiredKey{Name: "recommendations", Hint: "array of short strings"},
	)

	assert.Equal(t,
		"Your previous reply was not valid JSON. Respond again with ONLY a valid JSON object containing the keys verdict_current (boolean) and recommendations (array of short strings). Do not include any extra commentary.",
		got)
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	t.Run("all blocks present", func(t *testing.T) {
		t.Parallel()

		got := buildSystemPrompt("org context", "system text", "format text")
		assert.Equal(t, "org context\n\nsystem text\n\nformat text", got)
	})

	t.Run("no organization context", func(t *testing.T) {
		t.Parallel()

		got := buildSystemPrompt("", "system text", "format text")
		assert.Equal(t, "system text\n\nformat text", got)
	})

	t.Run("only system", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "system text", buildSystemPrompt("", "system text", ""))
	})
}

func TestNumberRecommendations(t *testing.T) {
	t.Parallel()

	got := numberRecommendations([]string{"fix the steps", "update the screenshot"})
	assert.Equal(t, "1. fix the steps\n2. update the screenshot", got)
}

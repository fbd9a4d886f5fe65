package service

import (
	"strconv"
	"strings"
)

// buildSystemPrompt assembles the system message from the shared organization
// context plus the task-specific instruction and format blocks. Empty blocks
// are skipped; present blocks are separated by blank lines.
func buildSystemPrompt(organizationContext, system, format string) string {
	var parts []string

	if s := strings.TrimSpace(organizationContext); s != "" {
		parts = append(parts, s, "")
	}

	if s := strings.TrimSpace(system); s != "" {
		parts = append(parts, s)
	}

	if s := strings.TrimSpace(format); s != "" {
		parts = append(parts, "", s)
	}

	return strings.Join(parts, "\n")
}

// numberRecommendations renders the selected recommendations as a numbered
// list, one per line, for the rewrite prompt.
func numberRecommendations(recommendations []string) string {
	lines := make([]string, 0, len(recommendations))

	for i, rec := range recommendations {
		lines = append(lines, strconv.Itoa(i+1)+". "+rec)
	}

	return strings.Join(lines, "\n")
}

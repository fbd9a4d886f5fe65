package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadPromptsFile(path string) (PromptsConfig, error) {
	var prompts PromptsConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return prompts, fmt.Errorf("parse %s: %w", path, err)
	}

	return prompts, nil
}

// mergePrompts overlays file-provided blocks on top of env-provided ones;
// the file wins wherever it sets a non-empty value.
func mergePrompts(base, overlay PromptsConfig) PromptsConfig {
	if overlay.OrganizationContext != "" {
		base.OrganizationContext = overlay.OrganizationContext
	}

	if overlay.AssessmentSystem != "" {
		base.AssessmentSystem = overlay.AssessmentSystem
	}

	if overlay.AssessmentFormat != "" {
		base.AssessmentFormat = overlay.AssessmentFormat
	}

	if overlay.RewriteSystem != "" {
		base.RewriteSystem = overlay.RewriteSystem
	}

	if overlay.RewriteFormat != "" {
		base.RewriteFormat = overlay.RewriteFormat
	}

	return base
}

package service

import (
	"encoding/json"

	"github.com/screenforge/screenforge-backend/internal/llm"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

// ParseConfig decodes the model's configuration answer.
// Code fences are stripped first. When the document does not parse, a second attempt
// is made with every line trimmed and joined, which repairs raw newlines inside strings.
func ParseConfig(raw string) (*domain.GeneratedConfig, error) {
	cleaned := llm.StripJSONFences(raw)

	var cfg domain.GeneratedConfig
	if err := json.Unmarshal([]byte(cleaned), &cfg); err == nil {
		return &cfg, nil
	}

	cfg = domain.GeneratedConfig{}
	if err := json.Unmarshal([]byte(llm.CollapseLines(cleaned)), &cfg); err == nil {
		return &cfg, nil
	}
	return nil, domain.ErrInvalidConfigJSON
}

package validate

import (
	"fmt"

	"github.com/oleynichenko/ai-tools-api/internal/domain"
)

// AudioClassification checks the recovered object against the classification
// schema: topic, emotion and tags must each be a non-empty array of strings.
// The prompt's 1-2 topic / 3-10 tag guidance is deliberately not enforced
// here; anything non-empty is accepted.
func AudioClassification(obj map[string]interface{}) (*domain.AudioClassification, error) {
	topic, err := requireStringList(obj, "topic")
	if err != nil {
		return nil, err
	}
	emotion, err := requireStringList(obj, "emotion")
	if err != nil {
		return nil, err
	}
	tags, err := requireStringList(obj, "tags")
	if err != nil {
		return nil, err
	}

	return &domain.AudioClassification{
		Topic:   topic,
		Emotion: emotion,
		Tags:    tags,
	}, nil
}

func requireStringList(obj map[string]interface{}, field string) ([]string, error) {
	raw, ok := obj[field]
	if !ok {
		return nil, missingField(field)
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, wrongType(field, "array")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: field %q must be a non-empty array", domain.ErrInvalidExtraction, field)
	}

	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q[%d] must be a string", domain.ErrInvalidExtraction, field, i)
		}
		out = append(out, s)
	}
	return out, nil
}

// Package tokenizer estimates how many model tokens bundled content occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model and the model name to report.
// Models without a dedicated tiktoken encoding fall back to cl100k_base, which is
// then reported as the model.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	lowerModel := strings.ToLower(model)

	if encoding, encodingErr := tiktoken.EncodingForModel(lowerModel); encodingErr == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: lowerModel}, model, nil
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// CountText estimates tokens for already decoded text.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, fmt.Errorf("nil tokenizer counter")
	}
	return counter.CountString(text)
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("tokenizer %s has no encoding", counter.name)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

package prompt

import (
	"context"
	"fmt"
)

// Scripted replays canned answers in order. Each answer must match the
// prompt kind it is consumed by: string for Input, bool for Confirm and int
// (an option index) or string (an option label) for Select.
type Scripted struct {
	Answers []any
	// Asked records the message of every prompt in order.
	Asked []string
}

func (s *Scripted) next(message string) (any, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return nil, fmt.Errorf("prompt: no scripted answer for %q", message)
	}
	ans := s.Answers[0]
	s.Answers = s.Answers[1:]
	return ans, nil
}

func (s *Scripted) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ans, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	str, ok := ans.(string)
	if !ok {
		return "", fmt.Errorf("prompt: %q expects a string answer, got %T", cfg.Message, ans)
	}
	if str == "" {
		str = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(str); err != nil {
			return "", err
		}
	}
	return str, nil
}

func (s *Scripted) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ans, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	b, ok := ans.(bool)
	if !ok {
		return false, fmt.Errorf("prompt: %q expects a bool answer, got %T", cfg.Message, ans)
	}
	return b, nil
}

func (s *Scripted) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ans, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	switch v := ans.(type) {
	case int:
		if v < 0 || v >= len(cfg.Options) {
			return 0, fmt.Errorf("prompt: option %d out of range for %q", v, cfg.Message)
		}
		return v, nil
	case string:
		if idx := indexOf(cfg.Options, v); idx >= 0 {
			return idx, nil
		}
		return 0, fmt.Errorf("prompt: %q is not an option of %q", v, cfg.Message)
	}
	return 0, fmt.Errorf("prompt: %q expects an int or string answer, got %T", cfg.Message, ans)
}

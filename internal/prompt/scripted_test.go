package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/internal/prompt"
)

func TestScriptedReplaysAnswers(t *testing.T) {
	ctx := context.Background()
	s := &prompt.Scripted{Answers: []any{"", true, "json"}}

	got, err := s.Input(ctx, prompt.InputConfig{Message: "Output file", Default: "out.go"})
	if err != nil || got != "out.go" {
		t.Fatalf("empty answer should take the default, got %q err %v", got, err)
	}
	ok, err := s.Confirm(ctx, prompt.ConfirmConfig{Message: "Overwrite?"})
	if err != nil || !ok {
		t.Fatalf("confirm: %v %v", ok, err)
	}
	idx, err := s.Select(ctx, prompt.SelectConfig{Message: "Renderer", Options: []string{"go", "json"}})
	if err != nil || idx != 1 {
		t.Fatalf("select: %d %v", idx, err)
	}

	if diff := cmp.Diff([]string{"Output file", "Overwrite?", "Renderer"}, s.Asked); diff != "" {
		t.Fatalf("asked mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.Input(ctx, prompt.InputConfig{Message: "extra"}); err == nil {
		t.Fatalf("expected error once answers run out")
	}
}

func TestScriptedRunsValidator(t *testing.T) {
	boom := errors.New("bad")
	s := &prompt.Scripted{Answers: []any{"x"}}
	_, err := s.Input(context.Background(), prompt.InputConfig{
		Message:   "Types",
		Validator: func(string) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected validator error, got %v", err)
	}
}

func TestScriptedRejectsWrongKind(t *testing.T) {
	s := &prompt.Scripted{Answers: []any{42}}
	if _, err := s.Confirm(context.Background(), prompt.ConfirmConfig{Message: "ok?"}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

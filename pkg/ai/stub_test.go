package ai

import (
	"context"
	"errors"
	"testing"
)

func TestStubClientDisablesEverything(t *testing.T) {
	s := NewStubClient()
	ctx := context.Background()

	if s.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if _, err := s.Translate(ctx, "hello"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Translate err = %v, want ErrDisabled", err)
	}
	if _, err := s.Embed(ctx, "hello"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Embed err = %v, want ErrDisabled", err)
	}
	if _, err := s.EmbedBatch(ctx, []string{"hello"}); !errors.Is(err, ErrDisabled) {
		t.Errorf("EmbedBatch err = %v, want ErrDisabled", err)
	}
	if _, err := s.SuggestLinks(ctx, nil, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("SuggestLinks err = %v, want ErrDisabled", err)
	}
	if _, err := s.ProposeTemplates(ctx, nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("ProposeTemplates err = %v, want ErrDisabled", err)
	}
}

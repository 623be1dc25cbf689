package contextstore

import (
	"context"
	"testing"

	"sonix-engine/internal/domain"
	"sonix-engine/internal/domain/model"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv := model.NewConversationContext("c1", []model.Message{
		{ID: "m1", Content: "hello", Status: model.MessageSent, Type: model.MessageText},
	}, nil, "")
	if err := s.Save(ctx, conv); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Find(ctx, "c1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ConversationID != "c1" || len(got.MessageWindow) != 1 {
		t.Fatalf("unexpected context: %+v", got)
	}
}

func TestMemoryStore_FindReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv := model.NewConversationContext("c1", []model.Message{
		{ID: "m1", Content: "original", Status: model.MessageSent, Type: model.MessageText},
	}, nil, "")
	if err := s.Save(ctx, conv); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, _ := s.Find(ctx, "c1")
	first.MessageWindow[0].Content = "mutated"

	second, _ := s.Find(ctx, "c1")
	if second.MessageWindow[0].Content != "original" {
		t.Fatal("mutating a returned context leaked into the store")
	}
}

func TestMemoryStore_LastWriterWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Save(ctx, model.NewConversationContext("c1", []model.Message{
		{ID: "m1", Content: "first"},
	}, nil, ""))
	_ = s.Save(ctx, model.NewConversationContext("c1", []model.Message{
		{ID: "m2", Content: "second"},
	}, nil, ""))

	got, err := s.Find(ctx, "c1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.MessageWindow) != 1 || got.MessageWindow[0].ID != "m2" {
		t.Fatalf("expected full overwrite, got %+v", got.MessageWindow)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Find(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestMemoryStore_RejectsInvalid(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Save(context.Background(), nil); err != domain.ErrInvalidArgument {
		t.Fatalf("nil context: got %v want ErrInvalidArgument", err)
	}
	if err := s.Save(context.Background(), &model.ConversationContext{}); err != domain.ErrInvalidArgument {
		t.Fatalf("empty id: got %v want ErrInvalidArgument", err)
	}
}

package storage

import (
	"context"
	"fmt"
	"testing"
)

func TestMessageRepo_AppendAndRecent(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	messages := NewMessageRepo(db)

	session, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	turns := []struct {
		role    string
		content string
	}{
		{"user", "How long is probation?"},
		{"assistant", "Probation lasts six months."},
		{"user", "Can it be extended?"},
	}
	for _, turn := range turns {
		if err := messages.Append(context.Background(), session.ID, turn.role, turn.content); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := messages.Recent(context.Background(), session.ID, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}

	if len(got) != len(turns) {
		t.Fatalf("Recent() returned %d messages, want %d", len(got), len(turns))
	}
	for i, turn := range turns {
		if got[i].Role != turn.role || got[i].Content != turn.content {
			t.Errorf("message %d = {%q %q}, want {%q %q}", i, got[i].Role, got[i].Content, turn.role, turn.content)
		}
	}
}

func TestMessageRepo_Recent_LimitsToNewest(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	messages := NewMessageRepo(db)

	session, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 12; i++ {
		content := fmt.Sprintf("message %d", i)
		if err := messages.Append(context.Background(), session.ID, "user", content); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := messages.Recent(context.Background(), session.ID, 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}

	if len(got) != 5 {
		t.Fatalf("Recent() returned %d messages, want 5", len(got))
	}
	// Should be the newest five, oldest first
	for i, msg := range got {
		want := fmt.Sprintf("message %d", 7+i)
		if msg.Content != want {
			t.Errorf("message %d content = %q, want %q", i, msg.Content, want)
		}
	}
}

func TestMessageRepo_Recent_EmptySession(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	messages := NewMessageRepo(db)

	session, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := messages.Recent(context.Background(), session.ID, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() on empty session returned %d messages, want 0", len(got))
	}
}

func TestMessageRepo_Recent_InvalidN(t *testing.T) {
	db := newTestDB(t)
	messages := NewMessageRepo(db)

	if _, err := messages.Recent(context.Background(), "some-session", 0); err == nil {
		t.Error("Recent() with n=0 should return error")
	}
}

func TestMessageRepo_SessionsAreIsolated(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepo(db)
	messages := NewMessageRepo(db)

	first, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := sessions.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := messages.Append(context.Background(), first.ID, "user", "first session question"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := messages.Recent(context.Background(), second.ID, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() leaked %d messages across sessions", len(got))
	}
}

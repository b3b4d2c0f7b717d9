package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestSessionRepo_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	session, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := uuid.Parse(session.ID); err != nil {
		t.Errorf("Create() session ID %q is not a valid UUID: %v", session.ID, err)
	}
	if session.CreatedAt.IsZero() {
		t.Error("Create() session CreatedAt is zero")
	}
	if session.LastActive.IsZero() {
		t.Error("Create() session LastActive is zero")
	}
}

func TestSessionRepo_Create_UniqueIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	first, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("Create() generated duplicate session IDs: %q", first.ID)
	}
}

func TestSessionRepo_Get(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	created, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get() ID = %q, want %q", got.ID, created.ID)
	}
}

func TestSessionRepo_Get_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	_, err := repo.Get(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepo_Touch(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	created, err := repo.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Touch(context.Background(), created.ID); err != nil {
		t.Errorf("Touch() error = %v", err)
	}
}

func TestSessionRepo_Touch_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepo(db)

	err := repo.Touch(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Touch() error = %v, want ErrNotFound", err)
	}
}

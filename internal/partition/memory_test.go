package partition

import (
	"context"
	"testing"
)

func TestMemoryStore_CreateExistsDrop(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Create(ctx, "org_acme"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, "org_acme"); err != ErrExists {
		t.Fatalf("Create duplicate: want ErrExists, got %v", err)
	}

	ok, err := s.Exists(ctx, "org_acme")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}

	if err := s.Drop(ctx, "org_acme"); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	ok, _ = s.Exists(ctx, "org_acme")
	if ok {
		t.Fatal("partition should be gone after Drop")
	}
	// idempotent
	if err := s.Drop(ctx, "org_acme"); err != nil {
		t.Fatalf("Drop absent: %v", err)
	}
}

func TestMemoryStore_PutItemsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "org_missing", "1", []byte(`{}`)); err != ErrNotFound {
		t.Fatalf("Put to absent partition: want ErrNotFound, got %v", err)
	}

	if err := s.Create(ctx, "org_a"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Put(ctx, "org_a", "1", []byte(`{"k":"v1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "org_a", "2", []byte(`{"k":"v2"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.Copy(ctx, "org_a", "org_b"); err != ErrNotFound {
		t.Fatalf("Copy to absent destination: want ErrNotFound, got %v", err)
	}
	if err := s.Create(ctx, "org_b"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Copy(ctx, "org_a", "org_b"); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	items, err := s.Items(ctx, "org_b")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || string(items["1"]) != `{"k":"v1"}` || string(items["2"]) != `{"k":"v2"}` {
		t.Errorf("copied items = %v", items)
	}

	// source untouched
	items, err = s.Items(ctx, "org_a")
	if err != nil || len(items) != 2 {
		t.Fatalf("source items = %v, %v", items, err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, k := range []string{"org_b", "org_a", "org_c"} {
		if err := s.Create(ctx, k); err != nil {
			t.Fatalf("Create %s: %v", k, err)
		}
	}
	keys, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"org_a", "org_b", "org_c"}
	if len(keys) != len(want) {
		t.Fatalf("List = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

package admins

import (
	"context"
	"strings"
	"testing"
	"time"

	"vetrina.ru/catalog-bot/internal/kv"
)

func newTestService() *Service {
	return NewService(NewRepository(kv.NewMemory()))
}

func containsMember(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	list, err := svc.Add(ctx, "@alice")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !containsMember(list, "@alice") {
		t.Fatalf("expected @alice in list, got %v", list)
	}

	// повторное добавление — no-op
	list, err = svc.Add(ctx, "@alice")
	if err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected single member, got %v", list)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, err := svc.Add(ctx, "@alice"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add(ctx, "@bob"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	list, err := svc.Remove(ctx, "@alice")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if containsMember(list, "@alice") || !containsMember(list, "@bob") {
		t.Fatalf("unexpected list after remove: %v", list)
	}

	// удаление отсутствующего возвращает список без изменений
	list, err = svc.Remove(ctx, "@ghost")
	if err != nil {
		t.Fatalf("Remove of absent member returned error: %v", err)
	}
	if len(list) != 1 || list[0] != "@bob" {
		t.Fatalf("unexpected list after removing absent member: %v", list)
	}
}

func TestExchangeTokenSingleUse(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	token, err := svc.IssueExchangeToken(ctx, "@alice", time.Minute)
	if err != nil {
		t.Fatalf("IssueExchangeToken returned error: %v", err)
	}

	owner, err := svc.ConsumeExchangeToken(ctx, token)
	if err != nil {
		t.Fatalf("ConsumeExchangeToken returned error: %v", err)
	}
	if owner != "@alice" {
		t.Fatalf("expected owner @alice, got %q", owner)
	}

	owner, err = svc.ConsumeExchangeToken(ctx, token)
	if err != nil {
		t.Fatalf("second ConsumeExchangeToken returned error: %v", err)
	}
	if owner != "" {
		t.Fatalf("expected consumed token to be gone, got %q", owner)
	}
}

func TestExchangeTokenFormat(t *testing.T) {
	token, err := newExchangeToken()
	if err != nil {
		t.Fatalf("newExchangeToken returned error: %v", err)
	}
	if len(token) != tokenLength {
		t.Fatalf("expected token of length %d, got %q", tokenLength, token)
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token %q contains rune outside alphabet", token)
		}
	}
}

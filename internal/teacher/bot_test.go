// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package teacher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jeranaias/chalkboard-tui/internal/model"
)

// fakeGenerator replies with a canned response and records what it saw.
type fakeGenerator struct {
	replies     []string
	err         error
	histories   [][]model.Turn
	attachments [][]string
}

func (g *fakeGenerator) Generate(_ context.Context, turns []model.Turn, attachments []string) (string, error) {
	g.histories = append(g.histories, turns)
	g.attachments = append(g.attachments, attachments)
	if g.err != nil {
		return "", g.err
	}
	idx := len(g.histories) - 1
	if idx < len(g.replies) {
		return g.replies[idx], nil
	}
	return fmt.Sprintf("reply %d", idx), nil
}

func TestAskAppendsBothTurns(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"It makes 4."}}
	orch := NewOrchestrator(gen, 10)

	reply, err := orch.Ask(context.Background(), "What is 2+2?", nil)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply != "It makes 4." {
		t.Errorf("reply = %q", reply)
	}

	hist := orch.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(hist))
	}
	if hist[0].Role != model.RoleUser || hist[0].Text != "What is 2+2?" {
		t.Errorf("unexpected user turn: %+v", hist[0])
	}
	if hist[1].Role != model.RoleModel || hist[1].Text != "It makes 4." {
		t.Errorf("unexpected model turn: %+v", hist[1])
	}
}

func TestAskSendsUserTurnInHistory(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, 10)

	if _, err := orch.Ask(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	// The generator must see the pending user turn as the last element.
	sent := gen.histories[0]
	if len(sent) == 0 || sent[len(sent)-1].Text != "hello" {
		t.Errorf("generator did not receive the user turn: %+v", sent)
	}
}

func TestAskFailureLeavesUserTurn(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	orch := NewOrchestrator(gen, 10)

	_, err := orch.Ask(context.Background(), "anyone there?", nil)
	if err == nil {
		t.Fatal("expected error")
	}

	hist := orch.History()
	if len(hist) != 1 {
		t.Fatalf("expected dangling user turn, got %d turns", len(hist))
	}
	if hist[0].Role != model.RoleUser {
		t.Errorf("surviving turn role = %q", hist[0].Role)
	}

	// The next successful exchange carries the dangling turn forward.
	gen.err = nil
	if _, err := orch.Ask(context.Background(), "hello again", nil); err != nil {
		t.Fatalf("second Ask failed: %v", err)
	}
	sent := gen.histories[1]
	if len(sent) != 2 || sent[0].Text != "anyone there?" {
		t.Errorf("dangling turn not carried forward: %+v", sent)
	}
}

func TestAskWindowEviction(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"4", "8", "16"}}
	orch := NewOrchestrator(gen, 2)

	exchanges := []string{"What is 2+2?", "And doubled?", "Once more?"}
	for _, q := range exchanges {
		if _, err := orch.Ask(context.Background(), q, nil); err != nil {
			t.Fatalf("Ask(%q) failed: %v", q, err)
		}
	}

	hist := orch.History()
	if len(hist) != 4 {
		t.Fatalf("expected window of 4 turns, got %d", len(hist))
	}
	// The first exchange is fully evicted.
	if hist[0].Text != "And doubled?" {
		t.Errorf("oldest surviving turn = %q, want the second question", hist[0].Text)
	}
	if hist[3].Text != "16" {
		t.Errorf("newest turn = %q", hist[3].Text)
	}
}

func TestAskAttachmentsNotPersisted(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, 10)

	if _, err := orch.Ask(context.Background(), "read this", []string{"notes.txt"}); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(gen.attachments[0]) != 1 {
		t.Fatalf("generator should receive attachments, got %v", gen.attachments[0])
	}

	// Follow-up submission carries no attachments.
	if _, err := orch.Ask(context.Background(), "thanks", nil); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(gen.attachments[1]) != 0 {
		t.Errorf("attachments leaked into later exchange: %v", gen.attachments[1])
	}
	for _, turn := range orch.History() {
		if turn.Text == "notes.txt" {
			t.Error("attachment path must not appear in history")
		}
	}
}

func TestClearDropsHistory(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, 10)
	if _, err := orch.Ask(context.Background(), "hi", nil); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	orch.Clear()
	if len(orch.History()) != 0 {
		t.Error("Clear should empty the window")
	}
}

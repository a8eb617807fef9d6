package watch

import (
	"reflect"
	"testing"
)

func TestNewPolicy_NormalizesKeywords(t *testing.T) {
	p := NewPolicy([]string{" Urgent ", "SALE", "", "  "}, nil)

	want := []string{"urgent", "sale"}
	if !reflect.DeepEqual(p.Keywords, want) {
		t.Errorf("expected %v, got %v", want, p.Keywords)
	}
}

func TestNewPolicy_PreservesOrder(t *testing.T) {
	p := NewPolicy([]string{"zebra", "alpha", "mike"}, nil)

	want := []string{"zebra", "alpha", "mike"}
	if !reflect.DeepEqual(p.Keywords, want) {
		t.Errorf("keyword order must be preserved: %v", p.Keywords)
	}
}

func TestNewPolicy_TrimsChats(t *testing.T) {
	p := NewPolicy(nil, []string{" -100123 ", "Ops Alerts", ""})

	want := []string{"-100123", "Ops Alerts"}
	if !reflect.DeepEqual(p.Chats, want) {
		t.Errorf("expected %v, got %v", want, p.Chats)
	}
}

func TestMatchesChat_EmptyListMatchesAll(t *testing.T) {
	p := NewPolicy(nil, nil)
	if !p.MatchesChat(MessageEvent{ChatID: "1", ChatTitle: "Anything"}) {
		t.Error("empty chat list must match every chat")
	}
}

func TestMatchesChat_IDIsExact(t *testing.T) {
	p := NewPolicy(nil, []string{"-100123"})
	if p.MatchesChat(MessageEvent{ChatID: "100123", ChatTitle: "x"}) {
		t.Error("ID match must be exact, prefix variants must not match")
	}
}

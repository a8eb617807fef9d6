package watch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "keywords:\n  - invoice\n  - urgent\nchats:\n  - \"-100123\"\n  - Ops Alerts\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rules.Keywords, []string{"invoice", "urgent"}) {
		t.Errorf("unexpected keywords: %v", rules.Keywords)
	}
	if !reflect.DeepEqual(rules.Chats, []string{"-100123", "Ops Alerts"}) {
		t.Errorf("unexpected chats: %v", rules.Chats)
	}
}

func TestLoadRules_Missing(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("keywords: {broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMergeRules_DedupesAndKeepsOrder(t *testing.T) {
	keywords, chats := MergeRules(
		[]string{"urgent", "sale"},
		[]string{"-100123"},
		&RulesFile{
			Keywords: []string{"sale", "invoice"},
			Chats:    []string{"-100123", "Ops Alerts"},
		},
	)

	if !reflect.DeepEqual(keywords, []string{"urgent", "sale", "invoice"}) {
		t.Errorf("unexpected keywords: %v", keywords)
	}
	if !reflect.DeepEqual(chats, []string{"-100123", "Ops Alerts"}) {
		t.Errorf("unexpected chats: %v", chats)
	}
}

func TestMergeRules_NilRules(t *testing.T) {
	keywords, chats := MergeRules([]string{"a"}, []string{"b"}, nil)
	if !reflect.DeepEqual(keywords, []string{"a"}) || !reflect.DeepEqual(chats, []string{"b"}) {
		t.Errorf("nil rules must be a no-op: %v %v", keywords, chats)
	}
}

package envutil

import (
	"testing"
	"time"
)

func TestHelpersFallBackToDefaults(t *testing.T) {
	t.Setenv("MT_INT", "nope")
	t.Setenv("MT_BOOL", "maybe")
	if Int("MT_INT", 7) != 7 {
		t.Fatalf("expected default int")
	}
	if !Bool("MT_BOOL", true) {
		t.Fatalf("expected default bool")
	}
	if String("MT_UNSET_VALUE", "x") != "x" {
		t.Fatalf("expected default string")
	}
}

func TestDurationParsing(t *testing.T) {
	t.Setenv("MT_DUR", "90")
	if got := Duration("MT_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
	t.Setenv("MT_DUR", "2h")
	if got := Duration("MT_DUR", time.Minute); got != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("MT_LIST", " a, ,b ")
	got := List("MT_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list: %v", got)
	}
}

package service

import (
	"strings"
	"testing"
)

func TestNormalizeListFoldsTrimsAndDedupes(t *testing.T) {
	got := NormalizeList("  Frisco , plano,FRISCO, ,Dallas ", strings.ToLower)
	if got != "frisco,plano,dallas" {
		t.Fatalf("normalized = %q, want %q", got, "frisco,plano,dallas")
	}
}

func TestNormalizeListStates(t *testing.T) {
	got := NormalizeList("tx, nj ,tx", strings.ToUpper)
	if got != "TX,NJ" {
		t.Fatalf("normalized = %q, want %q", got, "TX,NJ")
	}
}

func TestNormalizeListEmpty(t *testing.T) {
	if got := NormalizeList("", strings.ToLower); got != "" {
		t.Fatalf("normalized = %q, want empty", got)
	}
	if got := NormalizeList(" , ,", strings.ToLower); got != "" {
		t.Fatalf("normalized = %q, want empty", got)
	}
}

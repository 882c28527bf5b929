package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewHighlighter(t *testing.T) {
	var buf bytes.Buffer

	if h := newHighlighter(&buf, "never"); h != nil {
		t.Error("never: want nil highlighter")
	}
	if h := newHighlighter(&buf, "auto"); h != nil {
		t.Error("auto on a buffer: want nil highlighter")
	}
	if h := newHighlighter(&buf, "bogus"); h != nil {
		t.Error("invalid mode: want nil highlighter")
	}

	h := newHighlighter(&buf, "always")
	if h == nil {
		t.Fatal("always: want a highlighter")
	}
	got := h("12:00\t+0000")
	if !strings.HasPrefix(got, "\x1b[") || !strings.Contains(got, "12:00\t+0000") {
		t.Errorf("h() = %q, want colored text with the tab kept", got)
	}
}

package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDocumentPairPadsToWidth(t *testing.T) {
	doc := NewDocument(20)
	doc.Pair("Paid:", "Rs.500.00")
	out := string(doc.Bytes()[2:])
	want := "Paid:" + strings.Repeat(" ", 20-5-9) + "Rs.500.00\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDocumentPairCountsRunes(t *testing.T) {
	doc := NewDocument(10)
	doc.Pair("A", "₹5 × 2")
	out := string(doc.Bytes()[2:])
	if out != "A   ₹5 × 2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDocumentWrap(t *testing.T) {
	doc := NewDocument(12)
	doc.Wrap("Rs.500 x 1 Rs.200 x 2 Rs.10 x 3")
	lines := strings.Split(strings.TrimSuffix(string(doc.Bytes()[2:]), "\n"), "\n")
	for _, l := range lines {
		if len(l) > 12 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "Rs.500 x 1 Rs.200 x 2 Rs.10 x 3" {
		t.Fatalf("words lost: %v", lines)
	}
}

func TestDocumentCommands(t *testing.T) {
	doc := NewDocument(0)
	if doc.Width() != DefaultWidth {
		t.Fatalf("expected default width")
	}
	doc.Align(AlignCenter).Bold(true).Size(SizeDouble).Cut(true)
	want := []byte{esc, '@', esc, 'a', 1, esc, 'E', 1, gs, '!', 0x11, gs, 'V', 1}
	if !bytes.Equal(doc.Bytes(), want) {
		t.Fatalf("got % x, want % x", doc.Bytes(), want)
	}
}

func TestNewPrinterFromConfig(t *testing.T) {
	if _, err := New(Config{Type: "usb"}); err == nil {
		t.Fatalf("expected error without USB path")
	}
	if _, err := New(Config{Type: "network"}); err == nil {
		t.Fatalf("expected error without address")
	}
	if _, err := New(Config{Type: "laser"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	p, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsConnected() {
		t.Fatalf("null printer should report disconnected")
	}
	if err := p.Print(context.Background(), []byte("x")); err != nil {
		t.Fatalf("null printer should accept jobs: %v", err)
	}
}

package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestParse_RelativeMinutesEN(t *testing.T) {
	for _, n := range []int{1, 5, 10, 45, 90, 720} {
		text := fmt.Sprintf("in %d minutes buy milk", n)
		req, ok := Parse(text, LocaleEN)
		if !ok {
			t.Fatalf("%q: expected match", text)
		}
		if req.Kind != RelativeMinutes || req.Minutes != n {
			t.Fatalf("%q: want RelativeMinutes(%d), got kind=%d minutes=%d", text, n, req.Kind, req.Minutes)
		}
		if req.Body != "buy milk" {
			t.Fatalf("%q: want body %q, got %q", text, "buy milk", req.Body)
		}
	}
}

func TestParse_RelativeHoursConvert(t *testing.T) {
	req, ok := Parse("in 2 hours call mom", LocaleEN)
	if !ok {
		t.Fatal("expected match")
	}
	if req.Minutes != 120 {
		t.Fatalf("want 120 minutes, got %d", req.Minutes)
	}

	req, ok = Parse("через 3 часа позвонить маме", LocaleRU)
	if !ok {
		t.Fatal("expected RU match")
	}
	if req.Minutes != 180 {
		t.Fatalf("want 180 minutes, got %d", req.Minutes)
	}
	if req.Body != "позвонить маме" {
		t.Fatalf("unexpected body %q", req.Body)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	req, ok := Parse("IN 10 MINUTES stretch", LocaleEN)
	if !ok {
		t.Fatal("expected match")
	}
	if req.Minutes != 10 || req.Body != "stretch" {
		t.Fatalf("got minutes=%d body=%q", req.Minutes, req.Body)
	}
}

func TestParse_AbsoluteDate(t *testing.T) {
	req, ok := Parse("21.07.2025 18:00 call mom", LocaleEN)
	if !ok {
		t.Fatal("expected match")
	}
	if req.Kind != AbsoluteInstant {
		t.Fatalf("want AbsoluteInstant, got %d", req.Kind)
	}
	want := time.Date(2025, time.July, 21, 18, 0, 0, 0, time.UTC)
	if !req.At.Equal(want) {
		t.Fatalf("want %v, got %v", want, req.At)
	}
	if req.Body != "call mom" {
		t.Fatalf("want body %q, got %q", "call mom", req.Body)
	}
}

func TestParse_AbsoluteDateSlashes(t *testing.T) {
	req, ok := Parse("21/07/2025 18:00 call mom", LocaleEN)
	if !ok {
		t.Fatal("expected match with / separators")
	}
	want := time.Date(2025, time.July, 21, 18, 0, 0, 0, time.UTC)
	if !req.At.Equal(want) {
		t.Fatalf("want %v, got %v", want, req.At)
	}
}

func TestParse_EmptyBodyPlaceholder(t *testing.T) {
	req, ok := Parse("21.07.2025 18:00", LocaleEN)
	if !ok {
		t.Fatal("expected match without trailing text")
	}
	if req.Body != "No text" {
		t.Fatalf("want EN placeholder, got %q", req.Body)
	}

	req, ok = Parse("через 10 минут", LocaleRU)
	if !ok {
		t.Fatal("expected RU match without trailing text")
	}
	if req.Body != "Без текста" {
		t.Fatalf("want RU placeholder, got %q", req.Body)
	}
}

func TestParse_MalformedDate(t *testing.T) {
	for _, text := range []string{
		"32.13.2025 18:00 x",
		"31.02.2025 10:00 x",
		"01.01.2025 25:00 x",
		"00.06.2025 12:61 x",
	} {
		if _, ok := Parse(text, LocaleEN); ok {
			t.Fatalf("%q: expected no match", text)
		}
	}
}

func TestParse_NoMatch(t *testing.T) {
	for _, text := range []string{
		"",
		"hello there",
		"remind me later",
		"через много минут чай", // no digits
		"in minutes tea",
	} {
		if _, ok := Parse(text, LocaleEN); ok {
			t.Fatalf("%q: expected no match", text)
		}
	}
}

func TestParse_LocaleKeywordsDoNotCross(t *testing.T) {
	// RU keyword under EN locale is not a reminder, and vice versa.
	if _, ok := Parse("через 10 минут чай", LocaleEN); ok {
		t.Fatal("RU pattern must not match under EN locale")
	}
	if _, ok := Parse("in 10 minutes tea", LocaleRU); ok {
		t.Fatal("EN pattern must not match under RU locale")
	}
}

func TestRequest_DueAt(t *testing.T) {
	now := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

	rel := Request{Kind: RelativeMinutes, Minutes: 90}
	if got := rel.DueAt(now); !got.Equal(now.Add(90 * time.Minute)) {
		t.Fatalf("relative: got %v", got)
	}

	at := time.Date(2025, time.July, 21, 18, 0, 0, 0, time.UTC)
	abs := Request{Kind: AbsoluteInstant, At: at}
	if got := abs.DueAt(now); !got.Equal(at) {
		t.Fatalf("absolute: got %v", got)
	}
}

package middleware

import (
	"testing"
	"time"
)

func TestValidReqID(t *testing.T) {
	cases := []struct {
		id string
		ok bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true}, // lowercased first
		{"0f8fad5b-d9cb-469f-a165-70867728950e", true},
		{"too-short", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validReqID(tc.id); got != tc.ok {
			t.Errorf("validReqID(%q) = %v, want %v", tc.id, got, tc.ok)
		}
	}
}

func TestParseRequestAt(t *testing.T) {
	if _, err := parseRequestAt(""); err == nil {
		t.Fatal("empty must fail")
	}
	if _, err := parseRequestAt("2025-09-05T10:00:00"); err == nil {
		t.Fatal("naive timestamp without zone must fail")
	}

	got, err := parseRequestAt("1736123456")
	if err != nil {
		t.Fatalf("epoch seconds: %v", err)
	}
	if got.Unix() != 1736123456 {
		t.Fatalf("epoch seconds = %v", got)
	}

	got, err = parseRequestAt("1736123456789")
	if err != nil {
		t.Fatalf("epoch ms: %v", err)
	}
	if got.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch ms = %v", got)
	}

	got, err = parseRequestAt("2025-09-05T10:00:00+07:00")
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatal("must normalize to UTC")
	}
}

func TestBuildKey(t *testing.T) {
	key := buildKey("POST", "/withdrawals", "bbbb", "aaaa")
	want := "idemp:post:/withdrawals:bbbb:aaaa"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
}

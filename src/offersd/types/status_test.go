package types

import "testing"

func TestParseStatus(t *testing.T) {
	for _, st := range allStatuses {
		got, err := ParseStatus(string(st))
		if err != nil {
			t.Errorf("ParseStatus(%q) error: %v", st, err)
		}
		if got != st {
			t.Errorf("ParseStatus(%q) = %q", st, got)
		}
	}
	if _, err := ParseStatus("banana"); err == nil {
		t.Error("ParseStatus accepted an unknown status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("ParseStatus accepted an empty status")
	}
}

func TestCanAccept(t *testing.T) {
	for _, st := range allStatuses {
		want := st != StatusRejected
		if got := CanAccept(st); got != want {
			t.Errorf("CanAccept(%q) = %v, want %v", st, got, want)
		}
	}
}

func TestCanReject(t *testing.T) {
	for _, st := range allStatuses {
		if !CanReject(st) {
			t.Errorf("CanReject(%q) = false", st)
		}
	}
}

func TestParseSource(t *testing.T) {
	cases := []struct {
		in   string
		want SourceType
		ok   bool
	}{
		{"bot", SourceBot, true},
		{"user", SourceUser, true},
		{"scraper", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseSource(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseSource(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSource(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

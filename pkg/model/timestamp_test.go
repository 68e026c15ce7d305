package model

import (
	"errors"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    Seconds
		wantErr bool
	}{
		{"00:00", 0, false},
		{"00:10", 10, false},
		{"01:05", 65, false},
		{"12:34", 754, false},
		{"100:00", 6000, false},
		{"1:05", 0, true},   // minutes sur un seul chiffre
		{"01:65", 0, true},  // secondes hors bornes
		{"01:5", 0, true},   // secondes sur un seul chiffre
		{"0105", 0, true},   // pas de séparateur
		{"ab:cd", 0, true},  // non numérique
		{" 01:05", 0, true}, // espace parasite
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseTimestamp(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) : erreur attendue, obtenu %d", tc.in, got)
			} else if !errors.Is(err, ErrBadTimestamp) {
				t.Errorf("ParseTimestamp(%q) : erreur non enveloppée dans ErrBadTimestamp : %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) : erreur inattendue : %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimestamp(%q) = %d; want %d", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, in := range []string{"00:00", "00:59", "01:00", "12:34", "100:07"} {
		s, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) : %v", in, err)
		}
		if out := s.Clock(); out != in {
			t.Errorf("Clock(%d) = %q; want %q", s, out, in)
		}
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	if StatusAccepted.IsTerminal() || StatusProcessing.IsTerminal() {
		t.Error("accepted/processing ne doivent pas être terminaux")
	}
	if !StatusCompleted.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Error("completed/failed doivent être terminaux")
	}
}

func TestChapterScope(t *testing.T) {
	if got := ChapterScope("00:10"); got != "chapter_00:10" {
		t.Errorf("ChapterScope = %q", got)
	}
}

package transcript

import (
	"strings"
	"testing"

	"github.com/patrickprogramme/scholar/pkg/model"
)

func seg(ts, text string) model.TranscriptSegment {
	return model.TranscriptSegment{Timestamp: ts, Text: text}
}

func chap(ts, topic string) model.Chapter {
	return model.Chapter{Timestamp: ts, Topic: topic}
}

func TestSpanForMiddleChapter(t *testing.T) {
	segments := []model.TranscriptSegment{
		seg("00:00", "intro un"),
		seg("00:05", "intro deux"),
		seg("00:10", "coeur un"),
		seg("00:15", "coeur deux"),
		seg("00:20", "fin"),
	}
	chapters := []model.Chapter{
		chap("00:00", "Intro"),
		chap("00:10", "Coeur"),
		chap("00:20", "Fin"),
	}

	if got := SpanFor(segments, chapters, "00:10"); got != "coeur un coeur deux" {
		t.Fatalf("SpanFor(00:10) = %q", got)
	}
}

func TestSpanForLastChapterRunsToEnd(t *testing.T) {
	segments := []model.TranscriptSegment{
		seg("00:00", "a"),
		seg("00:10", "b"),
		seg("00:15", "c"),
	}
	chapters := []model.Chapter{
		chap("00:00", "Début"),
		chap("00:10", "Suite"),
	}

	if got := SpanFor(segments, chapters, "00:10"); got != "b c" {
		t.Fatalf("SpanFor(dernier chapitre) = %q", got)
	}
}

func TestSpanForNextChapterTimestampAbsentRunsToEnd(t *testing.T) {
	// le chapitre suivant pointe vers un timestamp absent du transcript :
	// la tranche court jusqu'à la fin
	segments := []model.TranscriptSegment{
		seg("00:00", "a"),
		seg("00:05", "b"),
	}
	chapters := []model.Chapter{
		chap("00:00", "Début"),
		chap("00:42", "Fantôme"),
	}

	if got := SpanFor(segments, chapters, "00:00"); got != "a b" {
		t.Fatalf("SpanFor = %q; want %q", got, "a b")
	}
}

func TestSpanForUnknownChapterOrSegment(t *testing.T) {
	segments := []model.TranscriptSegment{seg("00:00", "a")}
	chapters := []model.Chapter{chap("00:00", "Début"), chap("00:30", "Orphelin")}

	if got := SpanFor(segments, chapters, "99:99"); got != "" {
		t.Errorf("chapitre inconnu : got %q", got)
	}
	// chapitre connu mais aucun segment ne porte son timestamp
	if got := SpanFor(segments, chapters, "00:30"); got != "" {
		t.Errorf("segment de départ introuvable : got %q", got)
	}
}

func TestSpanForEmptyInputs(t *testing.T) {
	if got := SpanFor(nil, nil, "00:00"); got != "" {
		t.Errorf("entrées vides : got %q", got)
	}
}

// TestPartitionProperty vérifie que les tranches des chapitres forment une
// partition : disjointes, et leur concaténation dans l'ordre des chapitres
// reproduit exactement le transcript complet, chaque segment une seule fois.
func TestPartitionProperty(t *testing.T) {
	segments := []model.TranscriptSegment{
		seg("00:00", "s0"),
		seg("00:03", "s1"),
		seg("00:07", "s2"),
		seg("00:12", "s3"),
		seg("00:18", "s4"),
		seg("00:25", "s5"),
		seg("00:31", "s6"),
	}
	chapters := []model.Chapter{
		chap("00:00", "C0"),
		chap("00:07", "C1"),
		chap("00:18", "C2"),
		chap("00:31", "C3"),
	}

	var spans []string
	for _, c := range chapters {
		spans = append(spans, SpanFor(segments, chapters, c.Timestamp))
	}

	var all []string
	for _, s := range segments {
		all = append(all, s.Text)
	}
	want := strings.Join(all, " ")
	got := strings.Join(spans, " ")

	if got != want {
		t.Fatalf("la concaténation des tranches ne reproduit pas le transcript :\ngot  %q\nwant %q", got, want)
	}
}

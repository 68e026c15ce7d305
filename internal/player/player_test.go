package player

import (
	"testing"

	"github.com/patrickprogramme/scholar/pkg/model"
)

type recordingSeeker struct {
	calls []model.Seconds
}

func (r *recordingSeeker) SeekTo(s model.Seconds) {
	r.calls = append(r.calls, s)
}

func TestSeekConvertsTimestampToSeconds(t *testing.T) {
	rec := &recordingSeeker{}
	sync := NewSync()
	sync.Attach(rec)

	sync.Seek("01:05")
	sync.Seek("00:00")
	sync.Seek("12:34")

	want := []model.Seconds{65, 0, 754}
	if len(rec.calls) != len(want) {
		t.Fatalf("appels = %v; want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("appel %d = %d; want %d", i, rec.calls[i], want[i])
		}
	}
}

func TestSeekWithoutPlayerIsANoOp(t *testing.T) {
	sync := NewSync()
	// aucun lecteur attaché : ne doit ni paniquer ni remonter d'erreur
	sync.Seek("01:05")
}

func TestSeekIgnoresMalformedTimestamp(t *testing.T) {
	rec := &recordingSeeker{}
	sync := NewSync()
	sync.Attach(rec)

	sync.Seek("n'importe quoi")
	sync.Seek("1:5")

	if len(rec.calls) != 0 {
		t.Fatalf("le lecteur a été sollicité pour un timestamp illisible : %v", rec.calls)
	}
}

func TestDetachDisablesSeek(t *testing.T) {
	rec := &recordingSeeker{}
	sync := NewSync()
	sync.Attach(rec)
	sync.Attach(nil)

	sync.Seek("00:10")
	if len(rec.calls) != 0 {
		t.Fatalf("lecteur débranché sollicité : %v", rec.calls)
	}
}

// Package transcript dérive, pour chaque chapitre, la tranche de texte
// contiguë du transcript qui lui appartient. Requête pure : tout se
// recalcule à partir de (transcript, chapitres, timestamp), sans état
// intermédiaire mutable.
package transcript

import (
	"strings"

	"github.com/patrickprogramme/scholar/pkg/model"
)

// indexOfChapter localise un chapitre par égalité stricte de timestamp.
func indexOfChapter(chapters []model.Chapter, timestamp string) int {
	for i, c := range chapters {
		if c.Timestamp == timestamp {
			return i
		}
	}
	return -1
}

// indexOfSegment localise le premier segment portant ce timestamp.
// Les timestamps sont des clés opaques : pas de comparaison d'ordre ici.
func indexOfSegment(segments []model.TranscriptSegment, timestamp string) int {
	for i, s := range segments {
		if s.Timestamp == timestamp {
			return i
		}
	}
	return -1
}

// SpanFor renvoie le texte du chapitre identifié par chapterTimestamp.
//
// Bornes de la tranche :
//   - début : premier segment dont le timestamp égale celui du chapitre ;
//   - fin   : premier segment portant le timestamp du chapitre SUIVANT
//     (exclusif), ou la fin du transcript si c'est le dernier chapitre
//     ou si ce segment n'existe pas.
//
// Chapitre ou segment de départ introuvable -> chaîne vide.
// Les textes des segments sont joints par un espace simple, dans l'ordre
// du transcript.
func SpanFor(segments []model.TranscriptSegment, chapters []model.Chapter, chapterTimestamp string) string {
	chapterIndex := indexOfChapter(chapters, chapterTimestamp)
	if chapterIndex == -1 {
		return ""
	}

	startIndex := indexOfSegment(segments, chapterTimestamp)
	if startIndex == -1 {
		return ""
	}

	endIndex := len(segments)
	if chapterIndex < len(chapters)-1 {
		next := indexOfSegment(segments, chapters[chapterIndex+1].Timestamp)
		if next != -1 {
			endIndex = next
		}
	}
	// transcript non monotone : le chapitre suivant peut pointer avant le
	// début courant, auquel cas la tranche est vide
	if endIndex < startIndex {
		endIndex = startIndex
	}

	parts := make([]string, 0, endIndex-startIndex)
	for _, s := range segments[startIndex:endIndex] {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

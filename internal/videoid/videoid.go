// Package videoid extrait l'identifiant canonique (11 caractères) d'une
// vidéo à partir des formes d'URL usuelles. Fonctions pures, testables
// sans aucune E/S.
package videoid

import "regexp"

// IDLength est la longueur d'un identifiant canonique de vidéo.
const IDLength = 11

// extractRegex reconnaît les quatre formes courantes :
//   - watch   : youtube.com/watch?v=<id> (et variantes paramétrées ...&v=<id>)
//   - courte  : youtu.be/<id>
//   - embed   : youtube.com/embed/<id> (ou /v/<id>)
//   - shorts  : youtube.com/shorts/<id>
//
// Le groupe capture exactement 11 caractères ; toute autre forme échoue.
var extractRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:[^#]*&)?v=|embed/|v/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)

// urlRegex sert uniquement à pré-valider une saisie utilisateur
// (presse-papier ou prompt) avant d'essayer l'extraction complète.
var urlRegex = regexp.MustCompile(`(?i)https?://(www\.)?(youtube\.com/|youtu\.be/)`)

// Extract renvoie l'identifiant canonique contenu dans rawURL.
// Le booléen vaut false si aucune des formes reconnues ne correspond.
func Extract(rawURL string) (string, bool) {
	m := extractRegex.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsVideoURL indique si s ressemble à une URL de vidéo exploitable.
func IsVideoURL(s string) bool {
	return urlRegex.MatchString(s)
}

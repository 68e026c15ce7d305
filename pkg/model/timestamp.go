package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Seconds est un alias explicite pour représenter une durée en secondes.
type Seconds int64

// ErrBadTimestamp signale qu'une chaîne ne respecte pas le format "mm:ss".
var ErrBadTimestamp = errors.New("timestamp invalide (attendu mm:ss)")

// tsRegex accepte "mm:ss" : minutes sur au moins deux chiffres
// (le backend peut dépasser 99 minutes), secondes sur exactement deux
// chiffres entre 00 et 59.
var tsRegex = regexp.MustCompile(`^(\d{2,}):([0-5]\d)$`)

// ParseTimestamp convertit "mm:ss" en secondes totales (minutes*60 + secondes).
// Le parsing est strict : tout écart de format renvoie ErrBadTimestamp.
func ParseTimestamp(s string) (Seconds, error) {
	m := tsRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w : %q", ErrBadTimestamp, s)
	}
	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w : %q", ErrBadTimestamp, s)
	}
	seconds, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w : %q", ErrBadTimestamp, s)
	}
	return Seconds(minutes*60 + seconds), nil
}

// Clock formate Seconds en "mm:ss" (2 chiffres par composant, minutes
// non bornées). Exemple : 65 -> "01:05", 6000 -> "100:00".
func (s Seconds) Clock() string {
	total := int64(s)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Milliseconds renvoie la durée en millisecondes.
func (s Seconds) Milliseconds() int64 {
	return int64(s) * 1000
}

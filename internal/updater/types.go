package updater

import (
	"time"
)

// ReleaseInfo contient les métadonnées de la dernière release publiée.
type ReleaseInfo struct {
	TagName     string
	Name        string
	PublishedAt time.Time
	Body        string
	HTMLURL     string
}

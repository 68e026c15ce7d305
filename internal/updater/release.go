package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickprogramme/scholar/pkg/github"
)

// Dépôt d'où proviennent les releases de l'application.
const (
	releaseOwner = "patrickprogramme"
	releaseRepo  = "scholar"
)

type rawRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
}

// GetLatestRelease récupère et décode la dernière release GitHub de l'application.
func GetLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	data, err := github.FetchReleaseJSON(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return nil, err
	}

	var raw rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}
	if raw.TagName == "" {
		return nil, fmt.Errorf("release sans tag_name")
	}

	return &ReleaseInfo{
		TagName:     raw.TagName,
		Name:        raw.Name,
		PublishedAt: raw.PublishedAt,
		Body:        raw.Body,
		HTMLURL:     raw.HTMLURL,
	}, nil
}

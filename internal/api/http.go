// Package api implémente le client HTTP du contrat réseau du backend
// d'analyse : soumission, statut, enrichissement, questions libres et
// flashcards. Utilitaires volontairement légers et testables.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultMaxBytes  = 10_000_000
	DefaultUserAgent = "Scholar/1.0"
)

// Erreurs exportées
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrTooLarge = errors.New("response body too large")
)

// countingReader compte le nombre d'octets lus via Read.
type countingReader struct {
	R io.Reader
	N int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	if n > 0 {
		c.N += int64(n)
	}
	return n, err
}

// doJSON exécute la requête et décode la réponse JSON dans dst (pointeur).
// Le corps est lu via un reader limité ; si le décodage consomme plus de
// maxBytes on renvoie ErrTooLarge.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body any, dst any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("api: invalid url %q: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api: %w: %s", ErrStatus, resp.Status)
	}

	if resp.ContentLength > 0 && resp.ContentLength > c.maxBytes {
		return fmt.Errorf("api: content-length %d exceeds limit %d", resp.ContentLength, c.maxBytes)
	}

	if dst == nil {
		return nil
	}

	// +1 pour détecter un dépassement de maxBytes
	cr := &countingReader{R: io.LimitReader(resp.Body, c.maxBytes+1)}
	if err := json.NewDecoder(cr).Decode(dst); err != nil {
		return fmt.Errorf("api: decode: %w", err)
	}
	if cr.N > c.maxBytes {
		return ErrTooLarge
	}
	return nil
}

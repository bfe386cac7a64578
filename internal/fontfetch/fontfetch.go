package fontfetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// First-run provisioning for the label font. The label renderer works with
// any TTF dropped into its font directory; this package fills that directory
// from Google Fonts when it is empty, so a fresh checkout gets readable
// labels without a manual download. Failures are non-fatal: the renderer
// falls back to raylib's built-in font.

const (
	apiBase = "https://api.github.com/repos/google/fonts/contents/ofl"

	// Only this host is ever downloaded from; no user-supplied URLs.
	allowedRawPrefix = "https://raw.githubusercontent.com/google/fonts/"

	// DefaultFamily is the label font fetched when none is present.
	DefaultFamily = "Inter"
)

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Ensure makes sure dir holds at least one usable font file, fetching the
// family from Google Fonts if it does not. Returns the path of the font that
// is now present.
func Ensure(dir, family string) (string, error) {
	if existing := findFont(dir); existing != "" {
		return existing, nil
	}
	rawURL, err := resolveFamily(family)
	if err != nil {
		return "", err
	}
	return fetch(rawURL, dir)
}

// findFont returns the first .ttf or .otf under dir, preferring names
// containing "regular". Empty string when none exists.
func findFont(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var first string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if strings.Contains(lower, "regular") {
			return p
		}
		if first == "" {
			first = p
		}
	}
	return first
}

// folderCandidates converts a display name to google/fonts ofl folder names.
// "Open Sans" becomes "opensans", with "open-sans" as a second try.
func folderCandidates(family string) []string {
	family = strings.ToLower(strings.TrimSpace(family))
	if family == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(family, " ", "")
	withHyphens := strings.ReplaceAll(family, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// resolveFamily returns the raw download URL of a font file for the family,
// trying each folder-name candidate in turn.
func resolveFamily(family string) (string, error) {
	candidates := folderCandidates(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("fontfetch: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := lookupFolder(folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// lookupFolder lists one ofl folder via the GitHub contents API and picks a
// font file, preferring a non-italic face.
func lookupFolder(folder string) (string, error) {
	u := apiBase + "/" + url.PathEscape(folder)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fontfetch: family %q not found", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fontfetch: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	var fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" {
			continue
		}
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, allowedRawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("fontfetch: no font file in %q", folder)
}

// fetch downloads rawURL into dir, named after the URL path. A partial file
// is removed on error.
func fetch(rawURL, dir string) (string, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fontfetch: HTTP %d", resp.StatusCode)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	name := filepath.Base(strings.SplitN(rawURL, "?", 2)[0])
	savedPath := filepath.Join(dir, name)
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(savedPath)
		return "", fmt.Errorf("fontfetch: %w", err)
	}
	return savedPath, nil
}

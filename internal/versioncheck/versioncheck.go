// Package versioncheck looks up the latest published release of rockplan.
// Results are cached in the state store so CI runs don't hammer the GitHub
// API; every failure path degrades to "no result".
package versioncheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rockplan/rockplan/internal/state"
	"github.com/rockplan/rockplan/internal/version"
	"github.com/rockplan/rockplan/internal/versions"
)

const (
	githubOwner = "rockplan"
	githubRepo  = "rockplan"

	cacheTTL       = 24 * time.Hour
	requestTimeout = 5 * time.Second

	cacheKeyLatest = state.KVStoreKey("versioncheck:latest")
)

// githubRelease is the slice of the GitHub API release payload we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type cacheData struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Result describes an available update.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// Check compares the running binary against the latest release.
// Returns nil for dev builds and whenever the lookup cannot complete.
func Check(ctx context.Context) *Result {
	current := version.Get()
	if current == "local" {
		return nil
	}

	latest := lookupLatest(ctx)
	if latest == nil {
		return nil
	}

	return &Result{
		CurrentVersion:  current,
		LatestVersion:   latest.Version,
		UpdateURL:       latest.URL,
		UpdateAvailable: versions.Newer(latest.Version, current),
	}
}

func lookupLatest(ctx context.Context) *cacheData {
	cached, age := loadCache(ctx)
	if cached != nil && age < cacheTTL {
		return cached
	}

	release, err := fetchLatestRelease(ctx)
	if err != nil {
		// Stale cache beats nothing when GitHub is unreachable.
		return cached
	}

	data := &cacheData{Version: release.TagName, URL: release.HTMLURL}
	saveCache(ctx, data)
	return data
}

func fetchLatestRelease(ctx context.Context) (*githubRelease, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", githubOwner, githubRepo)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("versioncheck: github replied %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("versioncheck: release without tag")
	}
	return &release, nil
}

func loadCache(ctx context.Context) (*cacheData, time.Duration) {
	kv, err := state.DefaultKVStore(ctx)
	if err != nil {
		return nil, 0
	}
	entry, found, err := kv.Get(ctx, cacheKeyLatest)
	if err != nil || !found {
		return nil, 0
	}

	var data cacheData
	if err := json.Unmarshal([]byte(entry.Value), &data); err != nil {
		return nil, 0
	}
	return &data, time.Since(entry.CreatedAt)
}

func saveCache(ctx context.Context, data *cacheData) {
	kv, err := state.DefaultKVStore(ctx)
	if err != nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = kv.Upsert(ctx, cacheKeyLatest, string(raw))
}

package standalone

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/user-none/padnav/standalone/screens"
)

const (
	githubAPI   = "https://api.github.com"
	httpTimeout = 15 * time.Second
	userAgent   = "padnav"
)

// Repositories credited on the About page and checked for releases
var (
	DefaultContributorRepos = []string{"WinDurango/WinDurango.UI", "WinDurango/WinDurango"}
	DefaultReleaseRepo      = "WinDurango/WinDurango.UI"
)

// HTTP client with timeout
var httpClient = &http.Client{
	Timeout: httpTimeout,
}

// GitHubClient reads contributors and releases from the GitHub REST API
type GitHubClient struct {
	client  *http.Client
	baseURL string
	repos   []string // "owner/name" repositories whose contributors are merged
}

// NewGitHubClient creates a client crediting the contributors of repos
func NewGitHubClient(repos ...string) *GitHubClient {
	return &GitHubClient{
		client:  httpClient,
		baseURL: githubAPI,
		repos:   repos,
	}
}

type githubContributor struct {
	Login         string `json:"login"`
	HTMLURL       string `json:"html_url"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}

type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	HTMLURL    string `json:"html_url"`
	Prerelease bool   `json:"prerelease"`
}

// Contributors merges the contributors of every repository, summing
// contributions per login and sorting by contributions, most first. Bot
// accounts are left out. A repository that fails is skipped; the error is
// returned only when every repository failed.
func (g *GitHubClient) Contributors(ctx context.Context) ([]screens.Contributor, error) {
	merged := make(map[string]*screens.Contributor)
	var errs []error

	for _, repo := range g.repos {
		var list []githubContributor
		if err := g.getJSON(ctx, "/repos/"+repo+"/contributors", &list); err != nil {
			log.Printf("Failed to fetch contributors from %s: %v", repo, err)
			errs = append(errs, err)
			continue
		}
		for _, c := range list {
			if c.Type == "Bot" || c.Login == "" {
				continue
			}
			if existing, ok := merged[c.Login]; ok {
				existing.Contributions += c.Contributions
				continue
			}
			merged[c.Login] = &screens.Contributor{
				Login:         c.Login,
				URL:           c.HTMLURL,
				Contributions: c.Contributions,
			}
		}
	}

	if len(g.repos) > 0 && len(errs) == len(g.repos) {
		return nil, errors.Join(errs...)
	}

	out := make([]screens.Contributor, 0, len(merged))
	for _, c := range merged {
		out = append(out, *c)
	}
	slices.SortFunc(out, func(a, b screens.Contributor) int {
		if c := cmp.Compare(b.Contributions, a.Contributions); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Login), strings.ToLower(b.Login))
	})
	log.Printf("Retrieved %d contributors from GitHub", len(out))
	return out, nil
}

// LatestRelease returns the tag of repo's latest release when it is newer
// than current, or "" when current is up to date.
func (g *GitHubClient) LatestRelease(ctx context.Context, repo, current string) (string, error) {
	var release githubRelease
	if err := g.getJSON(ctx, "/repos/"+repo+"/releases/latest", &release); err != nil {
		return "", err
	}
	if release.Prerelease || compareVersions(release.TagName, current) <= 0 {
		return "", nil
	}
	return release.TagName, nil
}

// getJSON fetches path from the API and decodes the body into v
func (g *GitHubClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request for %s failed with status: %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// compareVersions compares dotted numeric versions such as "v1.2.0" and
// "1.3_dev". A leading 'v' and anything after '_', '-' or '+' are ignored;
// missing parts count as zero. A part that is not a number compares as zero.
func compareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := range max(len(pa), len(pb)) {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "_-+"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return nil
	}
	fields := strings.Split(v, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		parts[i], _ = strconv.Atoi(f)
	}
	return parts
}

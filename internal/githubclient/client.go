// Package githubclient is a minimal GitHub REST client for enumerating the
// repositories of an organization.
package githubclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com/"
	reposPerPage   = 100
)

// Client talks to the GitHub REST API. The zero value is not usable;
// construct with New.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Repo is the subset of repository metadata the org scan needs.
type Repo struct {
	Name          string `json:"name"`
	CloneURL      string `json:"clone_url"`
	SSHURL        string `json:"ssh_url"`
	DefaultBranch string `json:"default_branch"`
	Archived      bool   `json:"archived"`
}

// New builds a client. An empty token means unauthenticated requests.
func New(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// WithBaseURL returns a copy of the client pointed at base, for tests and
// GitHub Enterprise installs.
func (c *Client) WithBaseURL(base string) *Client {
	cp := *c
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	cp.baseURL = base
	return &cp
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v interface{}) error {
	u := c.baseURL + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("github api %s: %s", req.URL.Path, resp.Status)
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// ListOrgRepos pages through all repositories of org.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]Repo, error) {
	var all []Repo
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(reposPerPage))
		q.Set("page", strconv.Itoa(page))
		var repos []Repo
		if err := c.get(ctx, fmt.Sprintf("/orgs/%s/repos", org), q, &repos); err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			return all, nil
		}
		all = append(all, repos...)
	}
}

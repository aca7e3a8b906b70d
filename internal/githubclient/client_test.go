package githubclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListOrgRepos_Pagination(t *testing.T) {
	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/testorg/repos", func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1", "":
			_ = json.NewEncoder(w).Encode([]Repo{
				{Name: "repo1", CloneURL: "https://example.com/repo1.git", DefaultBranch: "main"},
				{Name: "repo2", CloneURL: "https://example.com/repo2.git", DefaultBranch: "master"},
			})
		case "2":
			_ = json.NewEncoder(w).Encode([]Repo{
				{Name: "repo3", CloneURL: "https://example.com/repo3.git", DefaultBranch: "main", Archived: true},
			})
		default:
			_ = json.NewEncoder(w).Encode([]Repo{})
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New("tok123").WithBaseURL(srv.URL)
	repos, err := c.ListOrgRepos(context.Background(), "testorg")
	if err != nil {
		t.Fatalf("ListOrgRepos: %v", err)
	}
	if len(repos) != 3 {
		t.Fatalf("expected 3 repos, got %d", len(repos))
	}
	if repos[0].Name != "repo1" || repos[2].Name != "repo3" {
		t.Fatalf("unexpected repo order: %+v", repos)
	}
	if !repos[2].Archived {
		t.Fatal("archived flag not decoded")
	}
	if sawAuth != "Bearer tok123" {
		t.Fatalf("unexpected auth header %q", sawAuth)
	}
}

func TestListOrgRepos_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New("").WithBaseURL(srv.URL).ListOrgRepos(context.Background(), "testorg")
	if err == nil {
		t.Fatal("expected error on 403 response")
	}
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/secretlit/secretlit/internal/analyzers"
	"github.com/secretlit/secretlit/internal/config"
	"github.com/secretlit/secretlit/internal/githubclient"
	"github.com/secretlit/secretlit/internal/gitutil"
	"github.com/secretlit/secretlit/internal/report"
	"github.com/secretlit/secretlit/internal/scanner"
)

const (
	cloneTimeout  = 60 * time.Second
	updateTimeout = 30 * time.Second
	cloneDepth    = 1
)

// OrgOptions configures an organization-wide scan.
type OrgOptions struct {
	Org        string
	DestDir    string
	SkipClone  bool
	ConfigPath string
	Format     string

	GitHub *githubclient.Client
	Out    io.Writer
	Logger *zap.SugaredLogger
}

// RunOrg enumerates the organization's repositories, brings local shallow
// clones up to date, scans each one and renders a combined report. Returns
// the total issue count.
func RunOrg(ctx context.Context, opts OrgOptions) (int, error) {
	log := opts.Logger
	cfg, err := config.Load(config.ResolvePath(opts.ConfigPath))
	if err != nil {
		return 0, err
	}
	format, err := report.ParseFormat(firstNonEmpty(opts.Format, cfg.Output.Format))
	if err != nil {
		return 0, err
	}
	matcher := buildMatcher(cfg.Matcher)
	analyzers.SetMatcher(matcher)

	if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
		return 0, fmt.Errorf("create dest dir: %w", err)
	}

	repos, err := opts.GitHub.ListOrgRepos(ctx, opts.Org)
	if err != nil {
		return 0, fmt.Errorf("list org repos: %w", err)
	}
	log.Infow("🔍 Found repositories", "org", opts.Org, "count", len(repos))

	if !opts.SkipClone {
		syncRepos(ctx, repos, opts.DestDir, log)
	}

	var all []scanner.Issue
	repoCounts := map[string]int{}
	scanned := 0
	for _, r := range repos {
		repoDir := filepath.Join(opts.DestDir, r.Name)
		if _, err := os.Stat(repoDir); err != nil {
			continue
		}
		log.Infow("📂 Scanning repo", "repo", r.Name)
		issues, err := scanTree(ctx, repoDir, matcher, cfg.IncludeCSV(), cfg.DisableCSV(), cfg.SkipConfigFiles, log)
		if err != nil {
			log.Errorw("❌ Scan failed", "repo", r.Name, "error", err)
			continue
		}
		scanned++
		if len(issues) > 0 {
			repoCounts[r.Name] = len(issues)
			all = append(all, issues...)
		}
	}

	scanner.SortIssues(all)
	log.Infow("📊 Scan summary", "repos_scanned", scanned, "total_issues", len(all), "issues_by_repo", repoCounts)

	if err := report.Render(opts.Out, all, format, ToolName, ToolVersion); err != nil {
		return 0, err
	}
	return len(all), nil
}

// syncRepos clones missing repositories and fast-forwards existing clones.
// Archived repositories are skipped.
func syncRepos(ctx context.Context, repos []githubclient.Repo, destDir string, log *zap.SugaredLogger) {
	var cloned, updated, failed, skipped int
	for _, r := range repos {
		if r.Archived {
			skipped++
			continue
		}
		url := r.CloneURL
		if url == "" {
			url = r.SSHURL
		}
		if url == "" {
			log.Warnw("⚠️  No clone URL; skipping", "repo", r.Name)
			skipped++
			continue
		}
		repoDir := filepath.Join(destDir, r.Name)
		if _, err := os.Stat(repoDir); err == nil {
			if err := gitutil.UpdateToLatest(ctx, repoDir, r.DefaultBranch, cloneDepth, updateTimeout); err != nil {
				log.Errorw("❌ Update failed", "repo", r.Name, "error", err)
				failed++
			} else {
				updated++
			}
			continue
		}
		started := time.Now()
		if err := gitutil.ShallowClone(ctx, url, repoDir, r.DefaultBranch, cloneDepth, cloneTimeout); err != nil {
			log.Errorw("❌ Clone failed", "repo", r.Name, "error", err)
			failed++
		} else {
			log.Infow("⬇️  Cloned repo", "repo", r.Name, "elapsed", time.Since(started).Truncate(time.Millisecond).String())
			cloned++
		}
	}
	log.Infow("📦 Sync summary", "cloned", cloned, "updated", updated, "failed", failed, "skipped", skipped)
}

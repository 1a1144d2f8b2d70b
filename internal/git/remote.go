package git

import (
	"context"
	"strings"
)

// Remote is one line of `git remote -v`.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"` // fetch or push
}

// RemoteInfo summarizes the remotes of a theme folder.
type RemoteInfo struct {
	HasRemote bool     `json:"hasRemote"`
	IsGitRepo bool     `json:"isGitRepo"`
	Remotes   []Remote `json:"remotes"`
	HasOrigin bool     `json:"hasOrigin"`
	RepoURL   *string  `json:"repoUrl"` // browser URL of origin, null without one
}

// ListRemotes runs `git remote -v` in dir.
// A directory outside any repository yields IsGitRepo=false together with
// ErrNotRepository so callers can decide whether that is a failure.
func ListRemotes(ctx context.Context, dir string) (RemoteInfo, error) {
	out, err := outputGit(ctx, dir, "remote", "-v")
	if err != nil {
		return RemoteInfo{Remotes: []Remote{}}, notRepo(err)
	}
	return ParseRemotes(string(out)), nil
}

// ParseRemotes parses `git remote -v` output.
// Lines with fewer than two fields are skipped; a missing type defaults
// to fetch.
func ParseRemotes(output string) RemoteInfo {
	info := RemoteInfo{IsGitRepo: true, Remotes: []Remote{}}

	for line := range strings.SplitSeq(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		r := Remote{Name: fields[0], URL: fields[1], Type: "fetch"}
		if len(fields) >= 3 {
			r.Type = strings.Trim(fields[2], "()")
		}
		info.Remotes = append(info.Remotes, r)
	}

	info.HasRemote = len(info.Remotes) > 0
	for _, r := range info.Remotes {
		if r.Name != "origin" {
			continue
		}
		info.HasOrigin = true
		if r.Type == "fetch" && info.RepoURL == nil {
			url := WebURL(r.URL)
			info.RepoURL = &url
		}
	}
	return info
}

// WebURL converts a GitHub SSH URL or an https clone URL into the
// browser URL of the repository. Other URLs are returned unchanged.
//
//	git@github.com:org/repo.git     -> https://github.com/org/repo
//	https://github.com/org/repo.git -> https://github.com/org/repo
//	git@gitlab.com:org/repo.git     -> git@gitlab.com:org/repo.git
func WebURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		return "https://github.com/" + strings.TrimSuffix(rest, ".git")
	}
	if strings.HasPrefix(url, "https://") {
		return strings.TrimSuffix(url, ".git")
	}
	return url
}

// GetOriginURL gets the origin URL for a repository
func GetOriginURL(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", notRepo(err)
	}
	return strings.TrimSpace(string(output)), nil
}

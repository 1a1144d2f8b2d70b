package git

import (
	"context"
	"strings"
)

// Submodule states as reported by `git submodule status`.
const (
	SubmoduleInitialized   = "initialized"
	SubmoduleUninitialized = "uninitialized"
	SubmoduleModified      = "modified"
	SubmoduleConflict      = "conflict"
)

// Submodule is one entry of `git submodule status`.
type Submodule struct {
	Path   string `json:"path"`
	Commit string `json:"commit"`
	State  string `json:"state"`
	Ref    string `json:"ref,omitempty"` // describe output, e.g. "heads/main"
}

// SubmoduleStatus lists the submodules of the repository at dir.
func SubmoduleStatus(ctx context.Context, dir string) ([]Submodule, error) {
	out, err := outputGit(ctx, dir, "submodule", "status")
	if err != nil {
		return []Submodule{}, notRepo(err)
	}
	return ParseSubmoduleStatus(string(out)), nil
}

// ParseSubmoduleStatus parses `git submodule status` output.
// Each line is "<flag><sha> <path> (<ref>)" where flag is a space,
// '-', '+' or 'U'.
func ParseSubmoduleStatus(output string) []Submodule {
	subs := []Submodule{}
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		state := SubmoduleInitialized
		switch line[0] {
		case '-':
			state = SubmoduleUninitialized
		case '+':
			state = SubmoduleModified
		case 'U':
			state = SubmoduleConflict
		}

		fields := strings.Fields(line[1:])
		if len(fields) < 2 {
			continue
		}

		s := Submodule{Commit: fields[0], Path: fields[1], State: state}
		if len(fields) >= 3 {
			s.Ref = strings.Trim(strings.Join(fields[2:], " "), "()")
		}
		subs = append(subs, s)
	}
	return subs
}

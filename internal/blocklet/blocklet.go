package blocklet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/btm/internal/cmd"
)

// didMarker prefixes the DID line printed by `blocklet create --did-only`.
const didMarker = "Created Blocklet DID:"

// ErrNoDID indicates the scaffolding tool ran but printed no DID line.
var ErrNoDID = errors.New("no DID found in blocklet output")

// DIDError carries the tool output when no DID could be extracted.
type DIDError struct {
	Output string
}

func (e *DIDError) Error() string {
	return ErrNoDID.Error()
}

func (e *DIDError) Unwrap() error {
	return ErrNoDID
}

// Check verifies that tools are on PATH. Without arguments it checks
// blocklet and yarn.
func Check(tools ...string) error {
	if len(tools) == 0 {
		tools = []string{"blocklet", "yarn"}
	}
	var missing []string
	for _, tool := range tools {
		if !cmd.Available(tool) {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s not found in PATH", strings.Join(missing, ", "))
	}
	return nil
}

// CreateDID asks the scaffolding tool for a fresh DID.
// A failing command returns its stderr; output without a DID line
// returns a *DIDError wrapping ErrNoDID.
func CreateDID(ctx context.Context, dir string) (string, error) {
	res := cmd.Capture(ctx, dir, nil, "blocklet", "create", "--did-only")
	if !res.Success() {
		return "", fmt.Errorf("blocklet create --did-only: %w", res.Err)
	}

	did, ok := ParseDID(res.Stdout)
	if !ok {
		return "", &DIDError{Output: res.Stdout}
	}
	return did, nil
}

// ParseDID extracts the DID from `blocklet create --did-only` output.
// The first line containing the marker wins; color codes are removed.
func ParseDID(output string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		_, rest, found := strings.Cut(ansi.Strip(sc.Text()), didMarker)
		if !found {
			continue
		}
		did := strings.TrimSpace(rest)
		if did == "" {
			continue
		}
		return did, true
	}
	return "", false
}

// DevCommand returns the shell command that starts a theme in dev mode.
func DevCommand(path string) string {
	return fmt.Sprintf("cd %s && yarn run update:deps && blocklet dev", shellQuote(path))
}

// Bundle runs `yarn run bundle` with NODE_OPTIONS set and returns
// everything the build produced. Callers decide what a failure means.
func Bundle(ctx context.Context, dir, nodeOptions string) cmd.Result {
	var env []string
	if nodeOptions != "" {
		env = append(env, "NODE_OPTIONS="+nodeOptions)
	}
	return cmd.Capture(ctx, dir, env, "yarn", "run", "bundle")
}

// shellQuote quotes s for POSIX shells when it contains anything unsafe.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./@:+=,", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

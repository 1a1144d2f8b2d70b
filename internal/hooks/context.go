package hooks

import "path/filepath"

// ContextFor builds a Context for a theme folder.
func ContextFor(path, did string, trigger Trigger, env map[string]string) Context {
	return Context{
		ID:      filepath.Base(path),
		Path:    path,
		DID:     did,
		Trigger: string(trigger),
		Env:     env,
	}
}

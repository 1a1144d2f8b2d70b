// Package forge publishes theme folders to a git hosting service.
//
// [GitHub] drives the gh CLI: it bootstraps a local repository with an
// initial commit and runs `gh repo create --source . --push`. [Script]
// hands the whole job to a user-provided script instead. [New] picks one
// based on configuration.
//
// # Usage
//
//	f := forge.New(cfg.GitHub.CreateScript)
//	res, err := f.CreateRepo(ctx, theme.Path, forge.CreateRepoParams{
//	    Org:         cfg.GitHub.Org,
//	    Name:        theme.ID,
//	    Description: forge.Description(theme.Name),
//	})
//
// Never call gh directly outside this package.
package forge

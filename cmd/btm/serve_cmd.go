package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/log"
	"github.com/raphi011/btm/internal/server"
	"github.com/raphi011/btm/internal/watch"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		watchMode bool
		staticDir string
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the theme API",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Serve the theme list and actions as a JSON API.

With --watch the workspace is rescanned whenever a theme folder, its
descriptor, package.json or logo changes. With --static the prebuilt
dashboard bundle is served from DIR; otherwise / redirects to the
development server. Stops gracefully on SIGINT/SIGTERM.`,
		Example: `  btm serve                        # Listen on :3007
  btm serve --addr 127.0.0.1:8080  # Custom listen address
  btm serve --watch                # Rescan on file changes
  btm serve --static ./dist        # Serve the dashboard bundle`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := config.FromContext(ctx)

			srvCfg := cfg.Server
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				srvCfg.Watch = watchMode
			}
			if cmd.Flags().Changed("static") {
				srvCfg.StaticDir = staticDir
			}

			svc, err := loadService(ctx)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)

			if srvCfg.Watch {
				w, err := watch.New(svc.Catalog.Options(), watch.DefaultDebounce)
				if err != nil {
					return err
				}
				l.Printf("Watching %s for changes\n", svc.Catalog.Options().Workspace)
				g.Go(func() error {
					return w.Run(gctx, func(ctx context.Context) {
						themes, err := svc.Refresh(ctx)
						if err != nil {
							l.Warn("rescan failed: %v", err)
							return
						}
						l.Debug("rescanned workspace", "themes", len(themes))
					})
				})
			}

			srv := server.New(gctx, svc, srvCfg)
			g.Go(func() error {
				return srv.ListenAndServe(gctx, srvCfg.Addr)
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "Listen address")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Rescan the workspace on file changes")
	cmd.Flags().StringVar(&staticDir, "static", "", "Serve the dashboard bundle from `DIR`")
	cmd.MarkFlagDirname("static")

	return cmd
}

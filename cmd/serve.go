package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mateconpizza/neo/internal/config"
	"github.com/mateconpizza/neo/internal/server"
	"github.com/mateconpizza/neo/internal/shell"
	"github.com/mateconpizza/neo/internal/sys"
)

const shutdownTimeout = 5 * time.Second

var serveFlags struct {
	addr string
	open bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the internal pages over local HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sh, err := openShell(ctx, shell.WithLinker(server.Linker{}))
		if err != nil {
			return err
		}
		defer sh.Close()

		addr := serveFlags.addr
		if addr == "" {
			addr = config.App.File.Server.Addr
		}
		srv := server.New(addr, sh, server.WithVersion(config.Version()))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			return sh.Settings().Watch(ctx)
		})
		g.Go(func() error {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Stop(sctx)
		})

		if serveFlags.open {
			u := "http://" + addr + "/history"
			if err := sys.OpenInBrowser(u); err != nil {
				slog.Warn("opening browser", "url", u, "error", err)
			}
		}

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.addr, "addr", "a", "", "listen address (default from config.yml)")
	serveCmd.Flags().BoolVarP(&serveFlags.open, "open", "o", false, "open the history page in the system browser")
	Root.AddCommand(serveCmd)
}

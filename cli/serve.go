package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"git.thinkinpower.net/bindb/bdata"
	"git.thinkinpower.net/bindb/data"
	"git.thinkinpower.net/bindb/middleware"
	"git.thinkinpower.net/bindb/route"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port int
	Mode string
	Wait bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve BIN lookups over HTTP",
		Long: `Serve BIN lookups over HTTP.

  GET /lookup/<bin>   200 with the record, 400 invalid BIN, 404 unknown BIN,
                      503 while the BIN data is not loaded
  GET /index          liveness text

With --wait a missing data file does not stay fatal: the server starts,
answers 503, and loads the file as soon as it is created.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.Config.Server.Port = opts.Port
			}
			if cmd.Flags().Changed("mode") {
				opts.Config.Server.Mode = opts.Mode
			}
			if err := opts.Config.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.Config.Server.Port))
			if err != nil {
				return errors.Wrap(err, "listen")
			}
			return serve(ctx, ln, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 8080, "listen port")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", data.RunModeRelease, "run mode: dev, test, release")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "keep serving and load the data file once it appears")

	return cmd
}

func setMode(mode string) {
	switch mode {
	case data.RunModeDev:
		gin.SetMode(gin.DebugMode)
	case data.RunModeTest:
		gin.SetMode(gin.TestMode)
	case data.RunModeRelease:
		gin.SetMode(gin.ReleaseMode)
	}
}

func newEngine(db bdata.BinDatabase) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Log())
	r.Use(middleware.Recovery())
	route.Register(r, db)
	return r
}

// serve answers lookups on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, opts *ServeOptions) error {
	setMode(opts.Config.Server.Mode)
	path := opts.Config.Data.Path

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	if err := opts.DB.TryLoad(path); err != nil {
		logger.Errorf("load bin data failed, error: %s", err)
		if opts.Wait {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := bdata.WatchAndLoad(ctx, opts.DB, path); err != nil {
					logger.Errorf("watching bin data file failed, error: %s", err)
				}
			}()
		}
	}

	srv := &http.Server{
		Handler:        newEngine(opts.DB),
		ReadTimeout:    opts.Config.Server.ReadTimeout,
		WriteTimeout:   opts.Config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("http server listening on %s", ln.Addr())
		serveErr <- srv.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}
	cancel()
	wg.Wait()

	logger.Info("Shutting down Server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = errors.Wrap(shutdownErr, "server shutdown")
	}
	logger.Info("Server exit.")
	return err
}

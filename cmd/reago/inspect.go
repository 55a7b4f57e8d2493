package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reago-dev/reago"
	"github.com/reago-dev/reago/internal/config"
	"github.com/reago-dev/reago/internal/inspector"
	"github.com/reago-dev/reago/pkg/telemetry"
)

func inspectCmd() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run the graph inspector with a demo workload",
		Long: `Run the inspector HTTP server against a demo reactive graph.

The demo graph is a counter pipeline driven by a ticker: a signal,
a derived memo, and an effect. The inspector exposes:

  GET /api/snapshot   current nodes and edges as JSON
  GET /api/stats      rolling write/pass counters
  GET /ws             WebSocket event feed
  GET /metrics        Prometheus metrics

Examples:
  reago inspect
  reago inspect --addr=0.0.0.0:7979`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Inspector.Addr = addr
			}
			return runInspect(cfg, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from reago.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runInspect(cfg *config.Config, verbose bool) error {
	log, err := buildLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	srv := inspector.New(log)

	hooks := []reago.Hooks{srv.Hooks()}
	if cfg.Telemetry.Metrics {
		m := telemetry.NewMetrics(telemetry.WithNamespace(cfg.Telemetry.Namespace))
		hooks = append(hooks, m.Hooks())
	}
	if cfg.Telemetry.Tracing {
		hooks = append(hooks, telemetry.Tracing(telemetry.WithTracerName(cfg.Telemetry.Tracer)))
	}

	rt := reago.NewRuntime(reago.WithHooks(reago.CombineHooks(hooks...)))
	srv.Attach(rt)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// All runtime operations happen on this one goroutine; the
	// inspector only observes through hooks.
	go runDemoGraph(ctx, rt)

	printBanner()
	fmt.Println("  inspect")
	fmt.Println()
	success("inspector listening on http://%s", cfg.Inspector.Addr)
	info("snapshot  http://%s/api/snapshot", cfg.Inspector.Addr)
	info("events    ws://%s/ws", cfg.Inspector.Addr)
	info("metrics   http://%s/metrics", cfg.Inspector.Addr)
	fmt.Println()

	httpSrv := &http.Server{Addr: cfg.Inspector.Addr, Handler: srv.Router()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	info("inspector stopped")
	return nil
}

// runDemoGraph drives a small counter pipeline so the inspector has
// something to show.
func runDemoGraph(ctx context.Context, rt *reago.Runtime) {
	cx := rt.CreateScope(nil)
	defer cx.Dispose()

	count, setCount := reago.CreateSignal(cx, 0)
	doubled := reago.CreateMemo(cx, func(_ *int) int {
		return count.Get() * 2
	})
	reago.CreateEffect(cx, func(_ *struct{}) struct{} {
		_ = doubled.Get()
		return struct{}{}
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			setCount.Update(func(v int) int { return v + 1 })
		}
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

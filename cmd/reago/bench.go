package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/reago-dev/reago"
	"github.com/reago-dev/reago/internal/config"
)

type benchProfile struct {
	Name    string
	Signals int
	Depth   int
	Fanout  int
	Writes  int
}

var benchProfiles = map[string]benchProfile{
	"fast": {
		Name:    "fast",
		Signals: 16,
		Depth:   4,
		Fanout:  2,
		Writes:  10_000,
	},
	"standard": {
		Name:    "standard",
		Signals: 64,
		Depth:   8,
		Fanout:  4,
		Writes:  100_000,
	},
	"stress": {
		Name:    "stress",
		Signals: 256,
		Depth:   16,
		Fanout:  8,
		Writes:  500_000,
	},
}

type benchReport struct {
	Profile     string  `json:"profile"`
	Signals     int     `json:"signals"`
	Memos       int     `json:"memos"`
	Effects     int     `json:"effects"`
	Writes      int     `json:"writes"`
	Passes      int     `json:"passes"`
	NodeUpdates int     `json:"node_updates"`
	DurationMs  float64 `json:"duration_ms"`
	WritesPerS  float64 `json:"writes_per_sec"`
	UpdatesPerS float64 `json:"updates_per_sec"`
	GoVersion   string  `json:"go_version"`
}

func benchCmd() *cobra.Command {
	var (
		profileName string
		signals     int
		depth       int
		fanout      int
		writes      int
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark propagation throughput",
		Long: `Benchmark write-to-effect propagation throughput.

Builds a dependency graph of signals feeding memo chains fanning
out into effects, then measures how fast writes drain.

Profiles:
  fast      16 signals × depth 4 × fanout 2, 10k writes
  standard  64 signals × depth 8 × fanout 4, 100k writes
  stress    256 signals × depth 16 × fanout 8, 500k writes

Examples:
  reago bench
  reago bench --profile=stress
  reago bench --signals=512 --depth=32 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if profileName != "" {
				cfg.Bench.Profile = profileName
			}
			if signals > 0 {
				cfg.Bench.Signals = signals
			}
			if depth > 0 {
				cfg.Bench.Depth = depth
			}
			if fanout > 0 {
				cfg.Bench.Fanout = fanout
			}
			if writes > 0 {
				cfg.Bench.Writes = writes
			}
			if jsonOut {
				cfg.Bench.JSON = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runBench(cfg.Bench)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Workload profile: fast, standard, stress")
	cmd.Flags().IntVar(&signals, "signals", 0, "Override signal count")
	cmd.Flags().IntVar(&depth, "depth", 0, "Override memo chain depth")
	cmd.Flags().IntVar(&fanout, "fanout", 0, "Override effects per chain")
	cmd.Flags().IntVar(&writes, "writes", 0, "Override write count")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}

func runBench(bc config.BenchConfig) error {
	p := benchProfiles[bc.Profile]
	if bc.Signals > 0 {
		p.Signals = bc.Signals
	}
	if bc.Depth > 0 {
		p.Depth = bc.Depth
	}
	if bc.Fanout > 0 {
		p.Fanout = bc.Fanout
	}
	if bc.Writes > 0 {
		p.Writes = bc.Writes
	}

	if !bc.JSON {
		printBanner()
		fmt.Println("  bench")
		fmt.Println()
		info("profile %s: %d signals, depth %d, fanout %d, %d writes",
			p.Name, p.Signals, p.Depth, p.Fanout, p.Writes)
	}

	var passes, updates int
	rt := reago.NewRuntime(reago.WithHooks(reago.Hooks{
		OnPassEnd: func(stats reago.PassStats) {
			passes++
			updates += stats.Updates
		},
	}))
	cx := rt.CreateScope(nil)

	writers := make([]reago.WriteSignal[int], p.Signals)
	for i := 0; i < p.Signals; i++ {
		source, setSource := reago.CreateSignal(cx, 0)
		writers[i] = setSource

		tail := reago.Readable[int](source)
		for d := 0; d < p.Depth; d++ {
			prev := tail
			tail = reago.CreateMemo(cx, func(_ *int) int {
				return prev.Get() + 1
			})
		}
		for f := 0; f < p.Fanout; f++ {
			sink := tail
			reago.CreateEffect(cx, func(prev *int) int {
				return sink.Get()
			})
		}
	}
	passes, updates = 0, 0

	start := time.Now()
	for w := 0; w < p.Writes; w++ {
		writers[w%p.Signals].Set(w)
	}
	elapsed := time.Since(start)
	cx.Dispose()

	report := benchReport{
		Profile:     p.Name,
		Signals:     p.Signals,
		Memos:       p.Signals * p.Depth,
		Effects:     p.Signals * p.Fanout,
		Writes:      p.Writes,
		Passes:      passes,
		NodeUpdates: updates,
		DurationMs:  float64(elapsed.Microseconds()) / 1000,
		WritesPerS:  float64(p.Writes) / elapsed.Seconds(),
		UpdatesPerS: float64(updates) / elapsed.Seconds(),
		GoVersion:   runtime.Version(),
	}

	if bc.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println()
	info("writes:       %d in %.1fms", report.Writes, report.DurationMs)
	info("passes:       %d", report.Passes)
	info("node updates: %d", report.NodeUpdates)
	info("throughput:   %.0f writes/sec, %.0f updates/sec", report.WritesPerS, report.UpdatesPerS)
	fmt.Println()
	success("bench complete")
	return nil
}

// topography generates fractal terrain and its contour lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/topograph/internal/config"
	"github.com/Faultbox/topograph/internal/logger"
	"github.com/Faultbox/topograph/internal/server"
	"github.com/Faultbox/topograph/pkg/contour"
	"github.com/Faultbox/topograph/pkg/formats"
	"github.com/Faultbox/topograph/pkg/topography"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	command := args[0]
	args = args[1:]

	switch command {
	case "print":
		err = cmdPrint(cfg)
	case "borders":
		err = cmdBorders(cfg)
	case "export":
		err = cmdExport(cfg, args)
	case "serve":
		err = cmdServe(cfg)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`topography - fractal terrain and contour line generator

Usage:
  topography [flags] <command> [args]

Commands:
  print             Print the height field as a table
  borders           Show polyline and segment counts per level
  export <file>     Write the map and every level as binary frames
  serve             Stream terrain to browser hosts over websockets

Flags:
  -config <file>    Config file (default ./topography.yaml)
  -size <n>         Height field size, 2^k+1
  -levels <n>       Number of contour levels
  -roughness <f>    Initial displacement amplitude
  -hurst <f>        Displacement decay exponent
  -seed <n>         Random seed (0 = random)
  -addr <addr>      Websocket listen address
  -debug            Enable debug logging

Examples:
  topography -size 9 -levels 10 print
  topography -seed 42 borders
  topography -size 257 export terrain.bin
  topography -addr :8080 serve`)
}

// engineOptions maps terrain settings to engine options.
func engineOptions(t config.TerrainConfig) []topography.Option {
	opts := []topography.Option{
		topography.WithSmoothing(t.BlurRadius, t.BlurIterations),
		topography.WithAutoNormalize(t.Normalize),
		topography.WithWorkers(t.Workers),
		topography.WithLogger(logger.Named("engine")),
	}
	if t.Seed != 0 {
		opts = append(opts, topography.WithSeed(t.Seed))
	}
	return opts
}

func newEngine(cfg *config.Config) (*topography.Engine, error) {
	t := cfg.Terrain
	e, err := topography.New(t.Size, t.Levels, t.Roughness, t.Hurst, engineOptions(t)...)
	if err != nil {
		return nil, err
	}
	if err := e.Compute(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

func cmdPrint(cfg *config.Config) error {
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	size := e.Size()
	m := e.Map()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fmt.Printf("%5.2f ", m[x+y*size])
		}
		fmt.Println()
	}
	return nil
}

func cmdBorders(cfg *config.Config) error {
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Size:   %d\n", e.Size())
	fmt.Printf("Levels: %d\n", e.Levels())
	fmt.Println()
	fmt.Printf("  %-6s %-9s %-10s %-8s %-9s %s\n", "level", "threshold", "polylines", "closed", "segments", "drift")

	for level := 0; level < e.Levels(); level++ {
		borders := e.LevelBorders(level)
		threshold := e.Threshold(level)
		closed := 0
		var drift float32
		for _, pl := range borders {
			if pl.Closed() {
				closed++
			}
			// Crossings lie on cell edges, where bilinear sampling is linear.
			for _, p := range pl {
				d := e.Field().Sample(p.X, p.Y) - threshold
				if d < 0 {
					d = -d
				}
				drift = max(drift, d)
			}
		}
		fmt.Printf("  %-6d %-9.3f %-10d %-8d %-9d %.2g\n",
			level, threshold, len(borders), closed, contour.EdgeCount(borders), drift)
	}
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: topography export <file>")
	}

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	out := formats.EncodeFrame(formats.MapFrame(e.Size(), e.Map()))
	for level := 0; level < e.Levels(); level++ {
		flat := formats.FlattenBorders(e.LevelBorders(level))
		out = append(out, formats.EncodeFrame(formats.BordersFrame(level, flat))...)
	}

	if err := os.WriteFile(args[0], out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	logger.Info("exported terrain",
		zap.String("file", args[0]),
		zap.Int("bytes", len(out)),
		zap.Int("levels", e.Levels()),
	)
	return nil
}

func cmdServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := cfg.Terrain
	factory := server.NewEngineFactory(t.Size, t.Levels, t.Roughness, t.Hurst, engineOptions(t)...)
	s, err := server.New(ctx, factory, server.Config{
		Logger:       logger.Named("server"),
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"

	"github.com/ironsheep/icon-tools-mcp/internal/httpapi"
	"github.com/ironsheep/icon-tools-mcp/internal/imaging"
	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Thresholds are the stripper options shared by every subcommand.
type Thresholds struct {
	WhiteMin    uint8 `help:"Channels above this make a pixel near-white" default:"240" env:"ICON_FIX_WHITE_MIN" group:"thresholds"`
	GreyMaxDiff uint8 `help:"Max pairwise channel spread of a grey pixel" default:"20" env:"ICON_FIX_GREY_MAX_DIFF" group:"thresholds"`
	GreyMin     uint8 `help:"Red channel above this makes a low-spread pixel light grey" default:"180" env:"ICON_FIX_GREY_MIN" group:"thresholds"`
	LightMin    uint8 `help:"Channels above this make an edge pixel eligible for shaving" default:"100" env:"ICON_FIX_LIGHT_MIN" group:"thresholds"`
	Iterations  int   `help:"Maximum edge shaving passes (0 disables shaving)" default:"4" env:"ICON_FIX_ITERATIONS" group:"thresholds"`
}

func (t Thresholds) options() transparency.Options {
	return transparency.Options{
		WhiteMin:        t.WhiteMin,
		GreyMaxDiff:     t.GreyMaxDiff,
		GreyMin:         t.GreyMin,
		LightMin:        t.LightMin,
		ShaveIterations: t.Iterations,
	}
}

// CLI is the icon-fix command line.
type CLI struct {
	Thresholds

	LogLevel string           `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"ICON_FIX_LOG_LEVEL"`
	Version  kong.VersionFlag `help:"Print version information" short:"v"`

	Fix   FixCmd   `cmd:"" help:"Strip the background of PNG files in place, keeping a .backup of each original"`
	Strip StripCmd `cmd:"" help:"Strip the background of an image and write the result as a new PNG"`
	Serve ServeCmd `cmd:"" help:"Serve the stripper over HTTP"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	return c.options().Validate()
}

// app carries what every command's Run needs.
type app struct {
	logger   *slog.Logger
	stripper *transparency.Stripper
}

func (a *app) strip(path string) (*image.NRGBA, transparency.Report, error) {
	src, err := imaging.Decode(path)
	if err != nil {
		return nil, transparency.Report{}, err
	}
	out, report := a.stripper.ProcessReport(src)
	return out, report, nil
}

// FixCmd is the in-place fixer.
type FixCmd struct {
	Jobs  int      `help:"Files fixed concurrently (0 uses GOMAXPROCS)" default:"0" short:"j"`
	Paths []string `arg:"" help:"PNG files to fix" type:"existingfile"`
}

func (f *FixCmd) Run(a *app) error {
	jobs := f.Jobs
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	work := make(chan string, jobs)
	var wg sync.WaitGroup
	var fixedCount, errCount atomic.Int64
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				if err := a.fix(path); err != nil {
					errCount.Add(1)
					a.logger.Error("could not fix image", "file", path, "error", err)
					continue
				}
				fixedCount.Add(1)
			}
		}()
	}

	// Two workers renaming the same file would race.
	seen := make(map[string]bool, len(f.Paths))
	for _, path := range f.Paths {
		key := fileKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		work <- path
	}
	close(work)
	wg.Wait()

	a.logger.Info("stats", "fixed", fixedCount.Load(), "errors", errCount.Load())
	if n := errCount.Load(); n > 0 {
		return fmt.Errorf("error processing %d of %d files", n, len(seen))
	}
	return nil
}

// fileKey names the file at path independently of how the path is spelled.
func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (a *app) fix(path string) error {
	img, report, err := a.strip(path)
	if err != nil {
		return err
	}
	backup, err := imaging.ReplaceWithBackup(path, img)
	if err != nil {
		return err
	}
	a.logger.Info("fixed", "file", path, "backup", backup,
		"filled", report.Filled, "shaved", report.Shaved, "passes", report.Passes)
	return nil
}

// StripCmd writes a stripped copy.
type StripCmd struct {
	In  string `arg:"" help:"Source image (png, jpeg, gif, bmp, tiff, webp)" type:"existingfile"`
	Out string `arg:"" help:"Destination PNG"`
}

func (s *StripCmd) Validate(kctx *kong.Context) error {
	if !strings.EqualFold(filepath.Ext(s.Out), ".png") {
		return fmt.Errorf("%w: %s", imaging.ErrNotPNG, s.Out)
	}
	return nil
}

func (s *StripCmd) Run(a *app) error {
	img, report, err := a.strip(s.In)
	if err != nil {
		return err
	}
	if err := imaging.SavePNG(s.Out, img); err != nil {
		return err
	}
	a.logger.Info("stripped", "from", s.In, "to", s.Out,
		"filled", report.Filled, "shaved", report.Shaved, "passes", report.Passes, "remaining", report.Remaining)
	return nil
}

// ServeCmd runs the HTTP service until interrupted.
type ServeCmd struct {
	Addr            string        `help:"Listen address" default:":8080" env:"ICON_FIX_ADDR"`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown" default:"5s"`
}

func (s *ServeCmd) Run(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           httpapi.NewRouter(a.logger, a.stripper.Options()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", s.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("icon-fix"),
		kong.Description("Remove white and checkerboard backgrounds from icons."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("icon-fix %s (built %s, commit %s)", Version, BuildTime, GitCommit)},
	)

	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)

	err := kctx.Run(&app{
		logger:   logger,
		stripper: transparency.New(cli.options()),
	})
	if err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

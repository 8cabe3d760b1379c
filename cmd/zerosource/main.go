package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
	"github.com/fwojciec/zerosource/fs"
	"github.com/fwojciec/zerosource/gemini"
	"github.com/fwojciec/zerosource/github"
	"github.com/fwojciec/zerosource/goldmark"
	"github.com/fwojciec/zerosource/goquery"
	"github.com/fwojciec/zerosource/htmltomarkdown"
	zshttp "github.com/fwojciec/zerosource/http"
	"github.com/fwojciec/zerosource/readability"
	"github.com/fwojciec/zerosource/rod"
	zsslog "github.com/fwojciec/zerosource/slog"
	"github.com/fwojciec/zerosource/sqlite"
	"github.com/fwojciec/zerosource/trafilatura"
	"golang.org/x/time/rate"
)

// ErrReported marks an error that a command has already written to stderr.
var ErrReported = errors.New("reported")

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Analysis cache path. Set before calling Run().
	DBPath string

	// Gemini API key. Commands that need a model fail without it.
	APIKey string

	// Default model name when --model is not given.
	Model string

	// Optional token for github: locations.
	GitHubToken string

	// Stdin is read for the "-" location.
	Stdin io.Reader

	// SQLite database used by the analysis cache.
	DB *sqlite.DB

	// Browser-backed fetcher, started only with --render.
	Browser *rod.Fetcher
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	model := os.Getenv("ZEROSOURCE_MODEL")
	if model == "" {
		model = gemini.DefaultModel
	}
	return &Main{
		DBPath:      defaultDBPath(),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       model,
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		Stdin:       os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Browser != nil {
		err = m.Browser.Close()
		m.Browser = nil
	}
	if m.DB != nil {
		if e := m.DB.Close(); e != nil && err == nil {
			err = e
		}
		m.DB = nil
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("zerosource"),
		kong.Description("Validate, inspect and bootstrap projects from Zero Source README documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_model": gemini.DefaultModel},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'zerosource --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	model := cli.Model
	if model == "" {
		model = m.Model
	}

	defer m.Close()

	resolver, err := m.newResolver(ctx, cli, logger)
	if err != nil {
		if cli.Render {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --render")
		}
		return err
	}
	deps.Source = zsslog.NewLoggingSource(resolver, logger)
	deps.Renderer = goldmark.NewRenderer()
	deps.Bootstrapper = &bootstrap.Bootstrapper{
		Limiter:     rate.NewLimiter(rate.Every(modelCallInterval), 1),
		Concurrency: cli.Generate.Concurrency,
		RetryDelays: bootstrap.DefaultRetryDelays(),
		MaxTokens:   cli.MaxTokens,
		Model:       model,
		Logger:      logger,
	}

	needsModel := (cmd == "validate" && cli.Validate.Deep) || cmd == "analyze" || cmd == "generate"
	if needsModel {
		if err := m.wireModel(ctx, deps, model, cmd, logger); err != nil {
			return err
		}
	}

	noCache := (cmd == "validate" && cli.Validate.NoCache) || (cmd == "analyze" && cli.Analyze.NoCache)
	needsCache := cmd == "cache" || (deps.Bootstrapper.Analyzer != nil && !noCache)
	if needsCache {
		if err := m.openDB(); err != nil {
			if cmd == "cache" {
				fmt.Fprintln(stderr, "Hint: Set ZEROSOURCE_DB to use a different database path")
				return err
			}
			logger.Warn("analysis cache disabled", "err", err)
		} else {
			analyses := sqlite.NewAnalysisService(m.DB)
			deps.Analyses = analyses
			deps.Bootstrapper.Analyses = analyses
		}
	}

	return kongCtx.Run(deps)
}

// wireModel attaches the Gemini analyzer, generator and token counter.
// A missing API key only degrades "validate --deep", which still reports the
// structural result.
func (m *Main) wireModel(ctx context.Context, deps *Dependencies, model, cmd string, logger *slog.Logger) error {
	if m.APIKey == "" {
		if cmd == "validate" {
			return nil
		}
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("%w: GEMINI_API_KEY not set", ErrReported)
	}

	client, err := gemini.NewClient(ctx, m.APIKey)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	b := deps.Bootstrapper
	b.Analyzer = zsslog.NewLoggingAnalyzer(gemini.NewAnalyzer(client, model), logger)
	b.Generator = zsslog.NewLoggingGenerator(gemini.NewGenerator(client, model), logger)

	if b.MaxTokens > 0 {
		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		b.TokenCounter = tokenCounter
	}
	return nil
}

func (m *Main) newResolver(ctx context.Context, cli *CLI, logger *slog.Logger) (*Resolver, error) {
	var fetcher zerosource.Fetcher = zshttp.NewFetcher(zshttp.WithTimeout(cli.Timeout))
	if cli.Render {
		browser, err := rod.NewFetcher()
		if err != nil {
			return nil, err
		}
		m.Browser = browser
		fetcher = browser
	}

	var fallback zerosource.Extractor = trafilatura.NewExtractor()
	if cli.Extractor == "readability" {
		fallback = readability.NewExtractor()
	}

	return &Resolver{
		Local: &fs.Source{Stdin: m.Stdin, StripFrontMatter: cli.StripFrontMatter},
		Remote: &zshttp.Source{
			Fetcher:   zsslog.NewLoggingFetcher(fetcher, logger),
			Extractor: goquery.NewReadmeExtractor(fallback),
			Converter: htmltomarkdown.NewConverter(),
		},
		GitHub: github.NewSource(github.NewClient(ctx, m.GitHubToken)),
	}, nil
}

func (m *Main) openDB() error {
	if dir := filepath.Dir(m.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory %q: %w", dir, err)
		}
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

// modelCallInterval paces calls to the model API.
const modelCallInterval = 500 * time.Millisecond

// tokenizerModel is used for token counting; the local tokenizer only ships
// vocabularies for a subset of models.
const tokenizerModel = "gemini-2.0-flash"

func defaultDBPath() string {
	if path := os.Getenv("ZEROSOURCE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "zerosource.db"
	}
	return filepath.Join(home, ".zerosource", "cache.db")
}

// report writes err to w in the CLI's error format and marks it as reported.
func report(w io.Writer, err error) error {
	fmt.Fprintf(w, "error: %s\n", errorMessage(err))
	return fmt.Errorf("%w: %w", ErrReported, err)
}

// errorMessage returns the message of application errors and the full text of
// anything else, so foreign failures stay diagnosable on the command line.
func errorMessage(err error) string {
	var e *zerosource.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

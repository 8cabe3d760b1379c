package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Source       zerosource.Source
	Bootstrapper *bootstrap.Bootstrapper
	Analyses     zerosource.AnalysisService
	Renderer     zerosource.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose          bool          `short:"v" help:"Log operations to stderr"`
	Model            string        `help:"Model used for analysis and generation (default: ZEROSOURCE_MODEL or ${default_model})"`
	StripFrontMatter bool          `name:"strip-frontmatter" help:"Remove YAML/TOML front matter from local documents"`
	Timeout          time.Duration `default:"10s" help:"Timeout for fetching remote documents"`
	Render           bool          `help:"Render remote pages in headless Chrome before extracting content"`
	Extractor        string        `enum:"trafilatura,readability" default:"trafilatura" help:"Main-content extractor for HTML pages without a README container (trafilatura, readability)"`
	MaxTokens        int           `name:"max-tokens" help:"Reject documents larger than this many tokens before calling the model (0 disables)"`

	Validate ValidateCmd `cmd:"" help:"Check that a document has the required sections"`
	Sections SectionsCmd `cmd:"" help:"Print the level-2 sections of a document"`
	Title    TitleCmd    `cmd:"" help:"Print the project title of a document"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Review a document for consistency and quality"`
	Generate GenerateCmd `cmd:"" help:"Generate source code for components described by a document"`
	Cache    CacheCmd    `cmd:"" help:"Manage the analysis cache"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Location string `arg:"" help:"Path, URL, github:owner/repo, or - for stdin"`
	Deep     bool   `help:"Also run model-based analysis"`
	NoCache  bool   `name:"no-cache" help:"Ignore cached analyses"`
	Format   string `enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Location string `arg:"" help:"Path, URL, github:owner/repo, or - for stdin"`
	Format   string `enum:"text,json,html" default:"text" help:"Output format (text, json, html)"`
	Outline  bool   `help:"Print the heading outline instead of section bodies"`
	Name     string `short:"n" help:"Print only the named section"`
}

// TitleCmd is the "title" subcommand.
type TitleCmd struct {
	Location string `arg:"" help:"Path, URL, github:owner/repo, or - for stdin"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Location string `arg:"" help:"Path, URL, github:owner/repo, or - for stdin"`
	NoCache  bool   `name:"no-cache" help:"Ignore cached analyses"`
	Format   string `enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Location    string   `arg:"" help:"Path, URL, github:owner/repo, or - for stdin"`
	Components  []string `name:"component" short:"c" sep:"none" required:"" help:"Component to generate as name[:description] (repeatable)"`
	Language    string   `short:"l" default:"go" help:"Target language"`
	Concurrency int      `default:"3" help:"Concurrent generation limit"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove all cached analyses"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}

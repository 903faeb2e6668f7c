package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	mdpress "github.com/mdpress/mdpress"
	"github.com/mdpress/mdpress/internal/config"
	"github.com/mdpress/mdpress/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrOutputDir          = errors.New("failed to create output directory")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrOutputForDirectory = errors.New("output must be a directory when input is a directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// conversionParams groups per-batch parameters shared by every file.
type conversionParams struct {
	title       string
	encoding    string
	styles      []mdpress.Style
	page        *mdpress.PageSettings
	footer      *mdpress.Footer
	metadata    *mdpress.Metadata
	tocForced   bool
	tocMaxDepth int
	htmlOnly    bool
	htmlOutput  bool
}

// runConvertCmd parses flags, builds the service pool, and executes
// the conversion. Returns the process exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return ExitUsage
	}

	log, closeLog, err := newLogger(env, flags.common.verbose, flags.common.quiet, flags.common.logFile)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	defer closeLog()

	configureMaxProcs(log)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, log, env); err != nil {
		log.Errorf("%v%s", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, log *logger, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration, merged over built-in defaults
	cfg := config.Default()
	if flags.common.config != "" {
		var err error
		cfg, err = config.Load(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log.Debugf("Config: %s", flags.common.config)
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	// Resolve input and output
	if len(positional) == 0 {
		return ErrNoInput
	}
	inputPath := positional[0]
	outputArg := flags.output
	if outputArg == "" && len(positional) > 1 {
		outputArg = positional[1]
	}

	files, err := discoverFiles(inputPath, outputArg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}
	log.Debugf("Discovered %d file(s)", len(files))

	params, err := buildParams(flags, cfg)
	if err != nil {
		return err
	}

	// One browser per worker; capped by file count
	poolSize := mdpress.ResolvePoolSize(flags.workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	log.Debugf("Pool size: %d", poolSize)

	pool := newLibraryPool(poolSize,
		mdpress.WithTimeout(timeout),
		mdpress.WithBrowserFlags(browserFlags(cfg)...),
	)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)

	failed := printResults(results, log)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// buildParams translates the loaded configuration and CLI flags into
// library input shared across the batch. CLI flags win over config.
func buildParams(flags *convertFlags, cfg *config.Config) (*conversionParams, error) {
	params := &conversionParams{
		title:       flags.title,
		encoding:    cfg.PDF.Encoding,
		styles:      buildStyles(cfg),
		page:        buildPageSettings(cfg),
		footer:      buildFooter(cfg),
		metadata:    buildMetadata(cfg),
		tocForced:   flags.toc.forced,
		tocMaxDepth: flags.toc.maxDepth,
		htmlOnly:    flags.outputMode.htmlOnly,
		htmlOutput:  flags.outputMode.html,
	}

	if params.page != nil {
		if err := params.page.Validate(); err != nil {
			return nil, err
		}
	}
	if err := params.footer.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// buildStyles converts ordered config style blocks to library styles.
func buildStyles(cfg *config.Config) []mdpress.Style {
	blocks := cfg.Styles.Blocks()
	styles := make([]mdpress.Style, 0, len(blocks))
	for _, b := range blocks {
		styles = append(styles, mdpress.Style{Name: b.Name, CSS: b.CSS})
	}
	return styles
}

// buildPageSettings converts config page options to inches.
func buildPageSettings(cfg *config.Config) *mdpress.PageSettings {
	width, height := cfg.PDF.PaperSize()
	return &mdpress.PageSettings{
		Width:        width,
		Height:       height,
		MarginTop:    cfg.PDF.MarginTop.Inches(),
		MarginBottom: cfg.PDF.MarginBottom.Inches(),
		MarginLeft:   cfg.PDF.MarginLeft.Inches(),
		MarginRight:  cfg.PDF.MarginRight.Inches(),
	}
}

// buildFooter returns a footer when the config enables one, else nil.
func buildFooter(cfg *config.Config) *mdpress.Footer {
	if !cfg.PDF.PageNumbers && cfg.PDF.FooterText == "" {
		return nil
	}
	return &mdpress.Footer{
		Position:       cfg.PDF.FooterPosition,
		ShowPageNumber: cfg.PDF.PageNumbers,
		Text:           cfg.PDF.FooterText,
	}
}

// buildMetadata returns Info dictionary fields from the config.
func buildMetadata(cfg *config.Config) *mdpress.Metadata {
	return &mdpress.Metadata{
		Title:    cfg.Metadata.Title,
		Creator:  cfg.Metadata.Creator,
		Producer: cfg.Metadata.Producer,
	}
}

// browserFlags converts unrecognized pdf_options keys into launch flags,
// preserving their declaration order.
func browserFlags(cfg *config.Config) []mdpress.BrowserFlag {
	out := make([]mdpress.BrowserFlag, 0, len(cfg.PDF.Extra))
	for _, f := range cfg.PDF.Extra {
		out = append(out, mdpress.BrowserFlag{Name: f.Name, Value: f.Value})
	}
	return out
}

// resolveTimeout applies the -t flag over the config timeout.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.PDF.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdpress.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdpress.MaxPoolSize)
	}
	return nil
}

// hintFor returns an actionable suggestion for well-known failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdpress.ErrBrowserNotFound):
		return hints.ForBrowserNotFound()
	case errors.Is(err, mdpress.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpress.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrWritePDF), errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

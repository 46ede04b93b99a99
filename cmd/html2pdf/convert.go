package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoOutput           = errors.New("no output specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrStdinBatch         = errors.New("stdin input cannot be combined with other inputs")
	ErrOutputNotDir       = errors.New("output must be a directory when converting multiple inputs")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// fileToConvert represents a single conversion job. An inputPath of "-"
// means standard input.
type fileToConvert struct {
	inputPath  string
	outputPath string
}

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	inputPath  string
	outputPath string
	err        error
	duration   time.Duration
}

// buildOptions maps flags to service options.
func buildOptions(flags *convertFlags) ([]html2pdf.Option, error) {
	var opts []html2pdf.Option
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, html2pdf.WithTimeout(d))
	}
	if flags.raster {
		opts = append(opts, html2pdf.WithRasterMode())
	}
	return opts, nil
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, pool Pool, stdin io.Reader, stdout, stderr io.Writer) error {
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}

	settings, err := resolveSettings(flags)
	if err != nil {
		return err
	}

	files, err := planFiles(positional)
	if err != nil {
		return err
	}

	if len(files) == 1 {
		svc := pool.Acquire()
		defer pool.Release(svc)

		res := convertFile(ctx, svc, files[0], settings, flags.baseURL, stdin)
		if res.err != nil {
			return res.err
		}
		report(res, flags, stdout, stderr)
		return nil
	}

	results := convertBatch(ctx, pool, files, settings, flags.baseURL)

	var failed int
	for _, res := range results {
		report(res, flags, stdout, stderr)
		if res.err != nil {
			failed++
		}
	}
	if failed > 0 {
		// Exit code reflects the first failure; each is already reported.
		for _, res := range results {
			if res.err != nil {
				return fmt.Errorf("%d of %d conversions failed: %w", failed, len(results), res.err)
			}
		}
	}
	return nil
}

// resolveSettings merges persisted config and CLI flags (CLI wins) into
// conversion settings.
func resolveSettings(flags *convertFlags) (html2pdf.Settings, error) {
	cfg := config.DefaultSettings()
	if flags.config != "" {
		loaded, err := config.Load(flags.config)
		if err != nil {
			return html2pdf.Settings{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = *loaded
	}

	s := html2pdf.Settings{
		PageSize:         cfg.PageSize,
		Orientation:      cfg.Orientation,
		MarginMm:         cfg.MarginMm(),
		Filename:         cfg.Filename,
		IncludeFonts:     cfg.Fonts(),
		RenderCodeBlocks: cfg.CodeBlocks(),
	}

	if flags.pageSize != "" {
		s.PageSize = strings.ToLower(flags.pageSize)
	}
	if flags.orientation != "" {
		s.Orientation = strings.ToLower(flags.orientation)
	}
	if flags.margin != marginUnset {
		s.MarginMm = float64(flags.margin)
	}
	if flags.noFonts {
		s.IncludeFonts = false
	}
	if flags.noCodeBlocks {
		s.RenderCodeBlocks = false
	}

	if err := s.Validate(); err != nil {
		return html2pdf.Settings{}, err
	}
	return s, nil
}

// planFiles maps positional arguments to conversion jobs. The last
// argument is the output; everything before it is input. A single "-"
// input reads HTML from standard input.
func planFiles(positional []string) ([]fileToConvert, error) {
	if len(positional) == 0 {
		return nil, ErrNoInput
	}
	if len(positional) == 1 {
		return nil, ErrNoOutput
	}

	inputs := positional[:len(positional)-1]
	output := positional[len(positional)-1]

	for _, in := range inputs {
		if in == "-" && len(inputs) > 1 {
			return nil, ErrStdinBatch
		}
	}

	if len(inputs) == 1 {
		outputPath := output
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			outputPath = filepath.Join(output, pdfName(inputs[0]))
		}
		return []fileToConvert{{inputPath: inputs[0], outputPath: outputPath}}, nil
	}

	// Batch: output must be a directory (created if absent).
	if info, err := os.Stat(output); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotDir, output)
	}
	if err := os.MkdirAll(output, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := make([]fileToConvert, len(inputs))
	for i, in := range inputs {
		files[i] = fileToConvert{inputPath: in, outputPath: filepath.Join(output, pdfName(in))}
	}
	return files, nil
}

// pdfName derives an output filename from an input path.
func pdfName(inputPath string) string {
	if inputPath == "-" {
		return config.DefaultFilename
	}
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".pdf"
}

// convertFile runs one conversion job end to end.
func convertFile(ctx context.Context, conv Converter, f fileToConvert, settings html2pdf.Settings, baseURL string, stdin io.Reader) conversionResult {
	start := time.Now()
	res := conversionResult{inputPath: f.inputPath, outputPath: f.outputPath}

	htmlContent, err := readInput(f.inputPath, stdin)
	if err != nil {
		res.err = err
		return res
	}

	pdfBytes, err := conv.Convert(ctx, html2pdf.Input{
		HTML:     htmlContent,
		BaseURL:  baseURL,
		Settings: &settings,
	})
	if err != nil {
		res.err = err
		return res
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(f.outputPath, pdfBytes, filePermissions); err != nil {
		res.err = fmt.Errorf("%w: %v", ErrWritePDF, err)
		return res
	}

	res.duration = time.Since(start)
	return res
}

// readInput loads HTML from a file, or from stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(content), nil
}

// convertBatch processes jobs concurrently using the service pool.
func convertBatch(ctx context.Context, pool Pool, files []fileToConvert, settings html2pdf.Settings, baseURL string) []conversionResult {
	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]conversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = conversionResult{inputPath: files[idx].inputPath, err: err}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], settings, baseURL, nil)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// report prints one conversion's outcome honoring --quiet and --verbose.
func report(res conversionResult, flags *convertFlags, stdout, stderr io.Writer) {
	if res.err != nil {
		fmt.Fprintf(stderr, "error: %s: %v\n", res.inputPath, res.err)
		return
	}
	if flags.quiet {
		return
	}
	if flags.verbose {
		fmt.Fprintf(stdout, "Created %s (%s)\n", res.outputPath, res.duration.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(stdout, "Created %s\n", res.outputPath)
}

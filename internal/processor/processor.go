package processor

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

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/engine"
	"github.com/idelchi/veil/internal/fileutil"
	"github.com/idelchi/veil/internal/logging"
	"github.com/idelchi/veil/internal/passphrase"
	"github.com/idelchi/veil/internal/ui"
)

// Cipher seals and opens byte slices. *engine.Engine implements it.
type Cipher interface {
	Encrypt(data, password []byte) ([]byte, error)
	Decrypt(blob, password []byte) ([]byte, error)
}

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// cipher does the cryptographic work
	cipher Cipher

	// password is borrowed from the caller, who zeroes it
	password []byte

	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) {
		p.log = log
	}
}

// WithOutput redirects progress and error lines.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Processor) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// New creates a Processor for the files in cfg.
func New(cfg *config.Config, cipher Cipher, password []byte, opts ...Option) *Processor {
	processor := &Processor{
		cfg:      cfg,
		cipher:   cipher,
		password: password,
		log:      logging.Discard(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		results:  make(chan Result, len(cfg.Files)),
	}

	for _, opt := range opts {
		opt(processor)
	}

	return processor
}

// ProcessFiles concurrently processes all files in the configuration.
// A failing file does not stop the others. The returned error is the first failure, if any.
//
//nolint:cyclop
func (p *Processor) ProcessFiles(ctx context.Context) (summary Summary, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				summary.Errored++

				fmt.Fprintf(p.stderr, "%s %s: %v\n", ui.Error.Sprint("Error processing"), ui.Path.Sprint(result.Input), result.Error)

				continue
			}

			summary.Processed++

			summary.TotalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Processed %s -> %s\n", ui.Path.Sprint(result.Input), ui.Path.Sprint(result.Output))
			}

			if !p.cfg.Delete {
				continue
			}

			if err := os.Remove(result.Input); err != nil {
				fmt.Fprintf(p.stderr, "%s %s: %v\n", ui.Error.Sprint("Error deleting"), ui.Path.Sprint(result.Input), err)
			} else if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Deleted %s\n", ui.Path.Sprint(result.Input))
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg.Decrypt)

			size, err := p.processFile(ctx, file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return summary, fmt.Errorf("processing files: %w", err)
	}

	return summary, nil
}

// processFile runs the checks for a single file, transforms it and writes the output atomically.
//
//nolint:cyclop
func (p *Processor) processFile(ctx context.Context, filename, outPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()

	if p.cfg.Decrypt && p.cfg.Strict && !strings.HasSuffix(filename, engine.Suffix) {
		return 0, fmt.Errorf("%w: missing %q suffix", ErrNotEncrypted, engine.Suffix)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return 0, fmt.Errorf("getting file info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return 0, errors.New("not a regular file")
	}

	if limit := p.cfg.MaxBytes(); limit > 0 && info.Size() > limit {
		return 0, fmt.Errorf("%w: %d bytes exceeds %s", ErrTooLarge, info.Size(), p.cfg.MaxSize)
	}

	if !p.cfg.Force && fileutil.Exists(outPath) {
		return 0, fmt.Errorf("%w: %q, use --force to overwrite", ErrOutputExists, outPath)
	}

	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	out, err := p.transform(ctx, data)
	if err != nil {
		return 0, err
	}

	if p.cfg.Decrypt {
		defer passphrase.Zero(out)
	}

	size, err := fileutil.WriteFile(outPath, out, info, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, err
	}

	p.log.Debug("processed", logging.File(filename), logging.Size(size), logging.Elapsed(start))

	return size, nil
}

type outcome struct {
	data []byte
	err  error
}

// transform runs the cipher on data, giving up when ctx is done or the per-file timeout expires.
// The cipher itself cannot be interrupted: an abandoned call finishes in the background
// and its plaintext is zeroed there. On encryption data is zeroed once sealed.
func (p *Processor) transform(ctx context.Context, data []byte) ([]byte, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	ch := make(chan outcome, 1)

	go func() {
		if p.cfg.Decrypt {
			out, err := p.cipher.Decrypt(data, p.password)
			ch <- outcome{data: out, err: err}

			return
		}

		out, err := p.cipher.Encrypt(data, p.password)
		passphrase.Zero(data)
		ch <- outcome{data: out, err: err}
	}()

	select {
	case <-ctx.Done():
		if p.cfg.Decrypt {
			go func() {
				passphrase.Zero((<-ch).data)
			}()
		}

		return nil, fmt.Errorf("abandoned: %w", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, p.userError(res.err)
		}

		return res.data, nil
	}
}

// userError hides why a container failed to open.
func (p *Processor) userError(err error) error {
	if errors.Is(err, engine.ErrAuthentication) || errors.Is(err, engine.ErrMalformedContainer) {
		p.log.Debug("decryption failed", logging.Error(err))

		return ErrDecryptFailed
	}

	if p.cfg.Decrypt {
		return fmt.Errorf("decrypting: %w", err)
	}

	return fmt.Errorf("encrypting: %w", err)
}

// OutputPath returns where the result for filename is written.
// A decrypt input named exactly like the suffix keeps its name and gains the fallback suffix.
func OutputPath(filename string, decrypt bool) string {
	base := filepath.Base(filename)

	if !decrypt {
		return filepath.Join(filepath.Dir(filename), engine.EncryptedName(base))
	}

	name := engine.OriginalName(base)
	if name == "" {
		name = base + engine.FallbackSuffix
	}

	return filepath.Join(filepath.Dir(filename), name)
}

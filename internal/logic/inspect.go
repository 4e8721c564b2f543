package logic

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"

	"github.com/idelchi/veil/internal/config"
	"github.com/idelchi/veil/internal/engine"
)

// Report describes the structure of one container. No password is involved,
// so a report cannot tell whether the container would open.
type Report struct {
	File      string `yaml:"file"`
	Size      string `yaml:"size"`
	Salt      string `yaml:"salt,omitempty"`
	Nonce     string `yaml:"nonce,omitempty"`
	Plaintext string `yaml:"plaintext,omitempty"`
	Original  string `yaml:"original,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// RunInspect prints a YAML report for every container in cfg.Files.
func RunInspect(cfg *config.Config, env Env) error {
	env = env.withDefaults(cfg)

	if _, err := resolveFiles(cfg); err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	eng, err := engine.New(*env.Params, engine.WithLogger(env.Log))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	reports := make([]Report, 0, len(cfg.Files))

	var failed int

	for _, file := range cfg.Files {
		report := inspect(eng, cfg, file)
		if report.Error != "" {
			failed++
		}

		reports = append(reports, report)
	}

	out, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}

	fmt.Fprint(env.Stdout, string(out))

	if failed > 0 {
		return fmt.Errorf("inspecting files: %d of %d are not valid containers", failed, len(reports))
	}

	return nil
}

func inspect(eng *engine.Engine, cfg *config.Config, file string) Report {
	report := Report{File: file}

	info, err := os.Stat(file)
	if err != nil {
		report.Error = err.Error()

		return report
	}

	report.Size = humanize.IBytes(uint64(info.Size())) //nolint:gosec

	if info.Size() > cfg.MaxBytes() {
		report.Error = fmt.Sprintf("larger than max-size %s", cfg.MaxSize)

		return report
	}

	blob, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		report.Error = err.Error()

		return report
	}

	container, err := eng.Parse(blob)
	if err != nil {
		report.Error = err.Error()

		return report
	}

	report.Salt = hex.EncodeToString(container.Salt)
	report.Nonce = hex.EncodeToString(container.Nonce)
	report.Original = filepath.Base(engine.OriginalName(file))

	if n := container.PlaintextSize(); n >= 0 {
		report.Plaintext = humanize.IBytes(uint64(n))
	} else {
		report.Error = fmt.Sprintf("%v: ciphertext shorter than the %d byte tag", engine.ErrMalformedContainer, engine.TagSize)
	}

	return report
}

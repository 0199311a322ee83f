package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opdoc-labs/opdoc/internal/transform"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGenerateCommand() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rewrite annotated handlers and emit their companion declarations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Generate(&config, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&config.SourcePath, "source", ".", "Directory containing Go source code to transform")
	cmd.Flags().BoolVar(&config.Write, "write", false, "Rewrite source files in place and write generated files")
	cmd.Flags().BoolVar(&config.Check, "check", false, "Exit non-zero if any file would be rewritten; write nothing")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .opdoc.yml config file")

	return cmd
}

// GenerateConfig holds configuration for the generate command.
type GenerateConfig struct {
	SourcePath string
	Write      bool
	Check      bool
	ConfigPath string
}

// Generate runs the transformation over the configured source tree. Without
// --write or --check the would-be file contents are printed to out.
func Generate(config *GenerateConfig, out io.Writer) error {
	if err := loadConfigFile(config); err != nil {
		return err
	}
	if config.Write && config.Check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	results, err := transform.ProcessDirectory(config.SourcePath)
	if err != nil {
		return err
	}

	switch {
	case config.Check:
		if len(results) > 0 {
			for _, res := range results {
				fmt.Fprintln(out, res.Path)
			}
			return fmt.Errorf("%d file(s) would be rewritten", len(results))
		}
		return nil
	case config.Write:
		return writeResults(results)
	default:
		return printResults(results, out)
	}
}

// writeResults persists both halves of every file pair. All transforms have
// already succeeded by the time we get here, so the rewrite stays atomic per
// file pair short of an I/O failure.
func writeResults(results []*transform.FileResult) error {
	for _, res := range results {
		if err := os.WriteFile(res.Path, res.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", res.Path, err)
		}
		if err := os.WriteFile(res.GeneratedPath, res.Generated, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", res.GeneratedPath, err)
		}
	}
	return nil
}

func printResults(results []*transform.FileResult, out io.Writer) error {
	for _, res := range results {
		fmt.Fprintf(out, "--- %s\n", res.Path)
		if _, err := out.Write(res.Source); err != nil {
			return err
		}
		fmt.Fprintf(out, "--- %s\n", res.GeneratedPath)
		if _, err := out.Write(res.Generated); err != nil {
			return err
		}
	}
	return nil
}

// loadConfigFile loads YAML config and overrides default flag values.
func loadConfigFile(config *GenerateConfig) error {
	if config.ConfigPath == "" {
		return nil
	}
	b, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg struct {
		Generate struct {
			Source string `yaml:"source"`
			Write  bool   `yaml:"write"`
		} `yaml:"generate"`
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if config.SourcePath == "." && cfg.Generate.Source != "" {
		config.SourcePath = cfg.Generate.Source
	}
	if !config.Write {
		config.Write = cfg.Generate.Write
	}
	return nil
}

// Package config decodes command-line flags into validated command configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

// Flag names shared by the command definitions and the configuration keys.
const (
	FlagExclude      = "exclude"
	FlagOutput       = "output"
	FlagStdout       = "stdout"
	FlagWrapped      = "wrapped"
	FlagName         = "name"
	FlagLanguage     = "lang"
	FlagSniffUnknown = "sniff-unknown"
	FlagTokens       = "tokens"
	FlagModel        = "model"
	FlagCopy         = "copy"
	FlagVerbose      = "verbose"
)

const (
	// DefaultOutputFileName is the file written by the render command.
	DefaultOutputFileName = "files_tree.md"
	// DefaultIdentifier names the wrapped snapshot.
	DefaultIdentifier = "files_content"
)

// runModeExclusions are excluded whenever the render command writes a file.
var runModeExclusions = []string{"temp", "cache"}

var (
	errEmptyOutput     = errors.New("output file name must not be empty")
	errEmptyIdentifier = errors.New("identifier must not be empty")
)

// RenderConfiguration holds the decoded options of the render and tree commands.
type RenderConfiguration struct {
	Root         string   `mapstructure:"-"`
	Exclude      []string `mapstructure:"exclude"`
	Output       string   `mapstructure:"output"`
	Stdout       bool     `mapstructure:"stdout"`
	Wrapped      bool     `mapstructure:"wrapped"`
	Name         string   `mapstructure:"name"`
	Language     string   `mapstructure:"lang"`
	SniffUnknown bool     `mapstructure:"sniff-unknown"`
	Tokens       bool     `mapstructure:"tokens"`
	Model        string   `mapstructure:"model"`
	Copy         bool     `mapstructure:"copy"`
	Verbose      bool     `mapstructure:"verbose"`
}

// LoadRenderConfiguration decodes flagSet into a RenderConfiguration and validates it.
// Flags the command does not define keep their zero values.
func LoadRenderConfiguration(flagSet *pflag.FlagSet) (RenderConfiguration, error) {
	reader := viper.New()
	if bindError := reader.BindPFlags(flagSet); bindError != nil {
		return RenderConfiguration{}, fmt.Errorf("bind flags: %w", bindError)
	}
	var configuration RenderConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return RenderConfiguration{}, fmt.Errorf("decode flags: %w", decodeError)
	}
	configuration.Exclude = utils.DeduplicatePatterns(trimPatterns(configuration.Exclude))
	configuration.Language = strings.ToLower(strings.TrimSpace(configuration.Language))
	if validationError := configuration.validate(flagSet); validationError != nil {
		return RenderConfiguration{}, validationError
	}
	return configuration, nil
}

func (configuration RenderConfiguration) validate(flagSet *pflag.FlagSet) error {
	if _, known := types.LabelsForLanguage(configuration.Language); !known {
		return fmt.Errorf("unsupported language %q (expected %s or %s)", configuration.Language, types.LanguageEnglish, types.LanguageRussian)
	}
	if flagSet.Lookup(FlagOutput) != nil && strings.TrimSpace(configuration.Output) == "" {
		return errEmptyOutput
	}
	if flagSet.Lookup(FlagName) != nil && strings.TrimSpace(configuration.Name) == "" {
		return errEmptyIdentifier
	}
	return nil
}

// Labels returns the labels selected by the language option.
func (configuration RenderConfiguration) Labels() types.Labels {
	labels, _ := types.LabelsForLanguage(configuration.Language)
	return labels
}

// WritesFile reports whether the render command writes its output file.
func (configuration RenderConfiguration) WritesFile() bool {
	return !configuration.Stdout
}

// EffectiveExclusions returns the caller patterns, extended in file mode by the
// temporary directories and the output file so a rerun never snapshots itself.
func (configuration RenderConfiguration) EffectiveExclusions() []string {
	patterns := append([]string{}, configuration.Exclude...)
	if configuration.WritesFile() && configuration.Output != "" {
		patterns = append(patterns, runModeExclusions...)
		patterns = append(patterns, filepath.Base(configuration.Output))
	}
	return utils.DeduplicatePatterns(patterns)
}

func trimPatterns(patterns []string) []string {
	trimmed := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if value := strings.TrimSpace(pattern); value != "" {
			trimmed = append(trimmed, value)
		}
	}
	return trimmed
}

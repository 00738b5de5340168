package config_test

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"github.com/temirov/treemd/internal/config"
	"github.com/temirov/treemd/internal/types"
)

func renderFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flagSet.StringSliceP(config.FlagExclude, "e", nil, "")
	flagSet.String(config.FlagOutput, config.DefaultOutputFileName, "")
	flagSet.Bool(config.FlagStdout, false, "")
	flagSet.Bool(config.FlagWrapped, false, "")
	flagSet.String(config.FlagName, config.DefaultIdentifier, "")
	flagSet.String(config.FlagLanguage, types.LanguageEnglish, "")
	flagSet.Bool(config.FlagSniffUnknown, false, "")
	flagSet.Bool(config.FlagTokens, false, "")
	flagSet.String(config.FlagModel, "gpt-4o", "")
	flagSet.Bool(config.FlagCopy, false, "")
	flagSet.Bool(config.FlagVerbose, false, "")
	return flagSet
}

func TestLoadRenderConfigurationDefaults(t *testing.T) {
	flagSet := renderFlagSet()
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	configuration, err := config.LoadRenderConfiguration(flagSet)
	if err != nil {
		t.Fatalf("LoadRenderConfiguration error: %v", err)
	}
	if configuration.Output != config.DefaultOutputFileName || configuration.Name != config.DefaultIdentifier {
		t.Fatalf("unexpected defaults: %+v", configuration)
	}
	if configuration.Stdout || configuration.Wrapped || configuration.Copy || configuration.Tokens {
		t.Fatalf("expected boolean flags off: %+v", configuration)
	}
	if configuration.Labels() != types.EnglishLabels {
		t.Fatalf("expected english labels")
	}
	expectedExclusions := []string{"temp", "cache", config.DefaultOutputFileName}
	if exclusions := configuration.EffectiveExclusions(); !reflect.DeepEqual(exclusions, expectedExclusions) {
		t.Fatalf("expected %v, got %v", expectedExclusions, exclusions)
	}
}

func TestLoadRenderConfigurationParsesFlags(t *testing.T) {
	flagSet := renderFlagSet()
	arguments := []string{
		"-e", "vendor", "-e", " *.tmp ", "-e", "vendor",
		"--stdout", "--wrapped", "--name", "snapshot",
		"--lang", "RU", "--sniff-unknown", "--tokens", "--model", "gpt-4",
		"--copy", "--verbose",
	}
	if err := flagSet.Parse(arguments); err != nil {
		t.Fatalf("parse: %v", err)
	}
	configuration, err := config.LoadRenderConfiguration(flagSet)
	if err != nil {
		t.Fatalf("LoadRenderConfiguration error: %v", err)
	}
	expected := config.RenderConfiguration{
		Exclude:      []string{"vendor", "*.tmp"},
		Output:       config.DefaultOutputFileName,
		Stdout:       true,
		Wrapped:      true,
		Name:         "snapshot",
		Language:     types.LanguageRussian,
		SniffUnknown: true,
		Tokens:       true,
		Model:        "gpt-4",
		Copy:         true,
		Verbose:      true,
	}
	if !reflect.DeepEqual(configuration, expected) {
		t.Fatalf("expected %+v, got %+v", expected, configuration)
	}
	if configuration.WritesFile() {
		t.Fatalf("stdout mode must not write a file")
	}
	if exclusions := configuration.EffectiveExclusions(); !reflect.DeepEqual(exclusions, []string{"vendor", "*.tmp"}) {
		t.Fatalf("stdout mode must not add run mode exclusions, got %v", exclusions)
	}
	if configuration.Labels() != types.RussianLabels {
		t.Fatalf("expected russian labels")
	}
}

func TestLoadRenderConfigurationUsesOutputBaseName(t *testing.T) {
	flagSet := renderFlagSet()
	if err := flagSet.Parse([]string{"--output", "docs/snapshot.md"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	configuration, err := config.LoadRenderConfiguration(flagSet)
	if err != nil {
		t.Fatalf("LoadRenderConfiguration error: %v", err)
	}
	expected := []string{"temp", "cache", "snapshot.md"}
	if exclusions := configuration.EffectiveExclusions(); !reflect.DeepEqual(exclusions, expected) {
		t.Fatalf("expected %v, got %v", expected, exclusions)
	}
}

func TestLoadRenderConfigurationRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "unknown language", arguments: []string{"--lang", "de"}},
		{name: "empty output", arguments: []string{"--output", " "}},
		{name: "empty identifier", arguments: []string{"--name", ""}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			flagSet := renderFlagSet()
			if err := flagSet.Parse(testCase.arguments); err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := config.LoadRenderConfiguration(flagSet); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

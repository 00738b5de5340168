// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/treemd/internal/config"
	"github.com/temirov/treemd/internal/output"
	"github.com/temirov/treemd/internal/services/clipboard"
	"github.com/temirov/treemd/internal/services/snapshot"
	"github.com/temirov/treemd/internal/tokenizer"
	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

const (
	versionFlagName      = "version"
	versionTemplate      = "treemd version: %s\n"
	defaultPath          = "."
	rootUse              = "treemd"
	rootShortDescription = "treemd renders a directory as a single Markdown document"
	rootLongDescription  = `treemd walks a directory and renders its ASCII tree followed by the
content of every text file, grouped by directory, as one Markdown document.
Binary files are listed without content. Use --version to print the application version.`
	versionFlagDescription = "display application version"

	renderUse              = types.CommandRender + " [path]"
	treeUse                = types.CommandTree + " [path]"
	renderAlias            = "r"
	treeAlias              = "t"
	renderShortDescription = "render the Markdown snapshot (" + renderAlias + ")"
	treeShortDescription   = "print the directory tree (" + treeAlias + ")"

	// renderLongDescription provides detailed help for the render command.
	renderLongDescription = `Render the directory tree and the content of every text file as Markdown.
By default the document is written to files_tree.md in the working directory;
use --stdout to print it instead and --wrapped to keep the assignment form.`
	// renderUsageExample demonstrates render command usage.
	renderUsageExample = `  # Snapshot the current directory into files_tree.md
  treemd render

  # Print a wrapped snapshot of ./service without vendor, with Russian headings
  treemd render ./service --stdout --wrapped -e vendor --lang ru`

	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Print the tree of the current directory
  treemd tree

  # Exclude generated files
  treemd tree -e "*.pb.go" ./api`

	exclusionFlagShorthand      = "e"
	exclusionFlagDescription    = "exclude path pattern (repeatable)"
	outputFlagDescription       = "file written by the render command"
	stdoutFlagDescription       = "print the document instead of writing a file"
	wrappedFlagDescription      = "emit the wrapped assignment form"
	nameFlagDescription         = "identifier of the wrapped form"
	languageFlagDescription     = "heading language (en or ru)"
	sniffUnknownFlagDescription = "render files without a known text extension when they do not look binary"
	tokensFlagDescription       = "log the token count of the document"
	modelFlagDescription        = "tokenizer model to use for token counting"
	copyFlagDescription         = "copy the document to the clipboard"
	verboseFlagDescription      = "log every collected file"
	errorWriteOutputFormat      = "writing %s: %w"
	errorCopyFormat             = "copying to clipboard: %w"
	errorTokenizerFormat        = "initializing tokenizer: %w"
	infoTokensMessage           = "token count"
	infoSummaryMessage          = "snapshot summary"
	debugFileTokensMessage      = "file tokens"
	infoCopiedMessage           = "copied to clipboard"
	loggerInitializationFormat  = "initializing logger: %w"
)

var errMissingDelimiters = errors.New("snapshot is missing its delimiters")

// CounterFactory constructs the token counter for a model.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// LoggerFactory constructs the application logger.
type LoggerFactory func(verbose bool) (*zap.Logger, error)

// Dependencies are the external services used by the commands.
type Dependencies struct {
	Copier     clipboard.Copier
	NewCounter CounterFactory
	NewLogger  LoggerFactory
}

func defaultDependencies() Dependencies {
	return Dependencies{
		Copier:     clipboard.NewService(),
		NewCounter: tokenizer.NewCounter,
		NewLogger:  utils.NewApplicationLogger,
	}
}

// Execute runs the treemd application.
func Execute() error {
	rootCommand := NewRootCommand(defaultDependencies())
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createRenderCommand(dependencies),
		createTreeCommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// addSelectionFlags registers the flags shared by render and tree.
func addSelectionFlags(command *cobra.Command) {
	command.Flags().StringSliceP(config.FlagExclude, exclusionFlagShorthand, nil, exclusionFlagDescription)
	command.Flags().String(config.FlagLanguage, types.LanguageEnglish, languageFlagDescription)
	command.Flags().Bool(config.FlagVerbose, false, verboseFlagDescription)
}

// createRenderCommand returns the render subcommand.
func createRenderCommand(dependencies Dependencies) *cobra.Command {
	renderCommand := &cobra.Command{
		Use:     renderUse,
		Aliases: []string{renderAlias},
		Short:   renderShortDescription,
		Long:    renderLongDescription,
		Example: renderUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := config.LoadRenderConfiguration(command.Flags())
			if configurationError != nil {
				return configurationError
			}
			configuration.Root = rootArgument(arguments)
			return runRender(command, configuration, dependencies)
		},
	}

	addSelectionFlags(renderCommand)
	renderCommand.Flags().String(config.FlagOutput, config.DefaultOutputFileName, outputFlagDescription)
	renderCommand.Flags().Bool(config.FlagStdout, false, stdoutFlagDescription)
	renderCommand.Flags().Bool(config.FlagWrapped, false, wrappedFlagDescription)
	renderCommand.Flags().String(config.FlagName, config.DefaultIdentifier, nameFlagDescription)
	renderCommand.Flags().Bool(config.FlagSniffUnknown, false, sniffUnknownFlagDescription)
	renderCommand.Flags().Bool(config.FlagTokens, false, tokensFlagDescription)
	renderCommand.Flags().String(config.FlagModel, tokenizer.DefaultModel, modelFlagDescription)
	renderCommand.Flags().Bool(config.FlagCopy, false, copyFlagDescription)
	return renderCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(dependencies Dependencies) *cobra.Command {
	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := config.LoadRenderConfiguration(command.Flags())
			if configurationError != nil {
				return configurationError
			}
			logger, loggerError := dependencies.NewLogger(configuration.Verbose)
			if loggerError != nil {
				return fmt.Errorf(loggerInitializationFormat, loggerError)
			}
			defer func() { _ = logger.Sync() }()

			service := snapshot.NewService(snapshot.Options{Labels: configuration.Labels(), Logger: logger})
			tree, treeError := service.Tree(rootArgument(arguments), configuration.Exclude)
			if treeError != nil {
				return treeError
			}
			if tree != "" {
				fmt.Fprintln(command.OutOrStdout(), tree)
			}
			return nil
		},
	}
	addSelectionFlags(treeCommand)
	return treeCommand
}

func rootArgument(arguments []string) string {
	if len(arguments) == 0 {
		return defaultPath
	}
	return arguments[0]
}

// runRender assembles the snapshot and delivers it to the file, stdout and clipboard.
func runRender(command *cobra.Command, configuration config.RenderConfiguration, dependencies Dependencies) error {
	logger, loggerError := dependencies.NewLogger(configuration.Verbose)
	if loggerError != nil {
		return fmt.Errorf(loggerInitializationFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	serviceOptions := snapshot.Options{
		Labels:          configuration.Labels(),
		SniffUndeclared: configuration.SniffUnknown,
		Logger:          logger,
	}
	if configuration.Tokens {
		counter, encodingName, counterError := dependencies.NewCounter(tokenizer.Config{Model: configuration.Model})
		if counterError != nil {
			return fmt.Errorf(errorTokenizerFormat, counterError)
		}
		logger.Debug(infoTokensMessage, zap.String("encoding", encodingName))
		serviceOptions.TokenCounter = counter
	}
	service := snapshot.NewService(serviceOptions)

	document, documentError := service.Document(configuration.Root, configuration.EffectiveExclusions())
	if documentError != nil {
		return documentError
	}
	wrapped := output.Wrap(configuration.Name, service.RenderDocument(document))
	rendered := wrapped
	if !configuration.Wrapped {
		unwrapped, unwrapOK := output.Unwrap(wrapped)
		if !unwrapOK {
			return errMissingDelimiters
		}
		rendered = unwrapped
	}

	summary, summaryError := service.Summarize(document, rendered)
	if summaryError != nil {
		return summaryError
	}
	summaryFields := []zap.Field{
		zap.Int("directories", summary.Directories),
		zap.Int("files", summary.Files),
		zap.Int("binary_files", summary.BinaryFiles),
	}
	if serviceOptions.TokenCounter != nil {
		summaryFields = append(summaryFields, zap.Int("tokens", summary.Tokens), zap.String("model", summary.Model))
		if configuration.Verbose {
			logFileTokens(logger, serviceOptions.TokenCounter, document)
		}
	}
	logger.Info(infoSummaryMessage, summaryFields...)

	if configuration.WritesFile() {
		if writeError := os.WriteFile(configuration.Output, []byte(rendered), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, configuration.Output, writeError)
		}
		fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(configuration.Labels().SavedConfirmFormat, configuration.Output))
	} else {
		fmt.Fprint(command.OutOrStdout(), rendered)
	}

	if configuration.Copy {
		if copyError := dependencies.Copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(errorCopyFormat, copyError)
		}
		logger.Info(infoCopiedMessage)
	}
	return nil
}

func logFileTokens(logger *zap.Logger, counter tokenizer.Counter, document *types.Document) {
	fileTokens, countError := tokenizer.CountDocumentFiles(counter, document)
	if countError != nil {
		logger.Warn(debugFileTokensMessage, zap.Error(countError))
		return
	}
	for _, entry := range fileTokens {
		logger.Debug(debugFileTokensMessage, zap.String("path", entry.RelativePath), zap.Int("tokens", entry.Tokens))
	}
}

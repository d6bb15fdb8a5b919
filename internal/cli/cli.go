// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/blueprint/internal/app"
	"github.com/temirov/blueprint/internal/config"
	"github.com/temirov/blueprint/internal/progress"
	"github.com/temirov/blueprint/internal/services/clipboard"
	"github.com/temirov/blueprint/internal/types"
	"github.com/temirov/blueprint/internal/utils"
)

const (
	rootUse                   = "blueprint [root]"
	rootShortDescription      = "copy a directory tree blueprint to the clipboard"
	rootLongDescriptionFormat = `blueprint walks a directory tree and copies an indented outline of its folders and files to the clipboard.
The tree defaults to the directory containing the blueprint executable. The folders %s are always skipped.`
	rootUsageExample = `  # Copy the tree of the directory holding the executable
  blueprint

  # Copy the tree of a project without progress bars
  blueprint ~/src/project --progress no`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default config.yaml into the working directory, or into ~/.blueprint with --global.`

	versionFlagName          = "version"
	versionFlagDescription   = "display application version"
	versionTemplate          = "blueprint version: {{.Version}}\n"
	configFlagName           = "config"
	configFlagDescription    = "path to a configuration file (default ./config.yaml)"
	progressFlagName         = "progress"
	progressFlagDescription  = "draw progress bars on stderr"
	clipboardFlagName        = "clipboard"
	clipboardFlagDescription = "copy the blueprint to the clipboard"
	globalFlagName           = "global"
	globalFlagDescription    = "write the configuration under the home directory"
	forceFlagName            = "force"
	forceFlagDescription     = "overwrite an existing configuration file"

	initWrittenMessageFormat = "Configuration written to %s\n"
	errorConfigurationFormat = "%w: loading configuration: %w"
	errorExecutableFormat    = "%w: %w"
	errorRootArgumentFormat  = "resolving root %s: %w"
	rootFailedMessageFormat  = "Error reading root directory: %v\n"
	exclusionNamesSeparator  = " and "
)

// dependencies are the collaborators a command needs from the process environment.
type dependencies struct {
	logger           *zap.Logger
	newCopier        func() clipboard.Copier
	locateExecutable func() (utils.ExecutableLocation, error)
	progressOutput   *os.File
	workingDirectory func() (string, error)
}

func defaultDependencies(logger *zap.Logger) dependencies {
	return dependencies{
		logger:           logger,
		newCopier:        func() clipboard.Copier { return clipboard.NewService() },
		locateExecutable: utils.LocateExecutable,
		progressOutput:   os.Stderr,
		workingDirectory: os.Getwd,
	}
}

// Execute runs the blueprint application.
func Execute(ctx context.Context, logger *zap.Logger) error {
	rootCommand := createRootCommand(defaultDependencies(logger))
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var configPath string
	var progressFlag *optionalBool
	var clipboardFlag *optionalBool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          fmt.Sprintf(rootLongDescriptionFormat, strings.Join(types.DefaultExclusions().Names(), exclusionNamesSeparator)),
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := deps.workingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(errorConfigurationFormat, types.ErrDependencyUnavailable, workingDirectoryError)
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configPath,
			})
			if configurationError != nil {
				return fmt.Errorf(errorConfigurationFormat, types.ErrDependencyUnavailable, configurationError)
			}
			return runBlueprint(command, deps, runSettings{
				arguments:        arguments,
				workingDirectory: workingDirectory,
				configuredRoot:   applicationConfiguration.Root,
				progressEnabled:  progressFlag.resolve(applicationConfiguration.ProgressEnabled()),
				clipboardEnabled: clipboardFlag.resolve(applicationConfiguration.ClipboardEnabled()),
			})
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.Flags().Bool(versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configPath, configFlagName, "", configFlagDescription)
	progressFlag = registerOptionalBoolFlag(rootCommand.Flags(), progressFlagName, progressFlagDescription)
	clipboardFlag = registerOptionalBoolFlag(rootCommand.Flags(), clipboardFlagName, clipboardFlagDescription)
	rootCommand.AddCommand(createInitCommand(deps))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

type runSettings struct {
	arguments        []string
	workingDirectory string
	configuredRoot   string
	progressEnabled  bool
	clipboardEnabled bool
}

func runBlueprint(command *cobra.Command, deps dependencies, settings runSettings) error {
	location, locateError := deps.locateExecutable()
	if locateError != nil {
		return fmt.Errorf(errorExecutableFormat, types.ErrDependencyUnavailable, locateError)
	}

	root := location.Directory
	switch {
	case len(settings.arguments) > 0:
		root = settings.arguments[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(settings.workingDirectory, root)
		}
	case settings.configuredRoot != "":
		root = settings.configuredRoot
	}
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return fmt.Errorf(errorRootArgumentFormat, root, absoluteError)
	}

	var copier clipboard.Copier
	if settings.clipboardEnabled {
		copier = deps.newCopier()
	}
	_, runError := app.Run(command.Context(), app.Options{
		Root:              absoluteRoot,
		SelfFileName:      location.FileName,
		Exclusions:        types.DefaultExclusions(),
		ClipboardDisabled: !settings.clipboardEnabled,
		Progress:          progress.NewSink(settings.progressEnabled, deps.progressOutput),
		Clipboard:         copier,
		Output:            command.OutOrStdout(),
		Logger:            deps.logger,
	})
	if errors.Is(runError, types.ErrFilesystem) {
		fmt.Fprintf(command.OutOrStdout(), rootFailedMessageFormat, runError)
		return nil
	}
	return runError
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := deps.workingDirectory()
			if workingDirectoryError != nil {
				return workingDirectoryError
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initWrittenMessageFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

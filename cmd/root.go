// Package cmd provides the CLI commands for gitweblinks.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Waiter blocks until detached notification handling has finished.
type Waiter interface {
	Wait()
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// EditorFactory creates the editor state from the command-line flags.
	EditorFactory func(activeFile, selection string) (domain.Editor, error)

	// GeneratorFactory assembles the link generation pipeline. The returned
	// Waiter drains notification follow-ups before the process exits.
	GeneratorFactory func(cfg *AppConfig, editor domain.Editor, log Logger) (domain.LinkGenerator, Waiter, error)

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// LinkType controls which ref is embedded in links.
	LinkType string

	// PreferredRemote is the remote used when a repository has several.
	PreferredRemote string

	// DefaultBranch is used when the default branch of a remote is unknown.
	DefaultBranch string

	// UseShortHash shortens commit hashes in links.
	UseShortHash bool

	// ShowCopyMessage controls the notification shown after copying.
	ShowCopyMessage bool

	// Servers is passed to the GeneratorFactory.
	Servers any

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// Command-line flags.
var (
	activeFile  string
	selection   string
	noSelection bool
	linkType    string
	action      string
	remoteName  string
	verbose     bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for gitweblinks.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitweblinks [file]",
		Short: "Create a web link for a file in a Git repository",
		Long: `gitweblinks creates a shareable web link for a file in a Git working copy.

The file's repository and remote determine the link target. Remote URLs for
GitHub, GitLab, Bitbucket, Azure DevOps and Gitea are recognized out of the
box; self-hosted instances can be added in the settings file. On success the
link is printed to stdout and, depending on --action, copied to the
clipboard or opened in the browser.

Examples:
  # Copy a link to a file in the current repository
  gitweblinks src/main.go

  # Link to specific lines
  gitweblinks src/main.go --selection 10-20

  # Link to the exact commit instead of the branch
  gitweblinks src/main.go --type commit

  # Open the link in the browser instead of copying it
  gitweblinks src/main.go --action open

  # Link to the file the invoking editor has focused
  gitweblinks --active-file /work/widgets/src/main.go --selection 10:5-12:30`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVar(&activeFile, "active-file", "",
		"File the invoking editor has focused; used when no file argument is given")
	rootCmd.Flags().StringVarP(&selection, "selection", "s", "",
		"Selected lines as START[:COL]-END[:COL], for example 10:5-12:30")
	rootCmd.Flags().BoolVar(&noSelection, "no-selection", false,
		"Link to the file without a line fragment")
	rootCmd.Flags().StringVarP(&linkType, "type", "t", "",
		"Ref to embed in the link: commit, branch or default (overrides settings)")
	rootCmd.Flags().StringVarP(&action, "action", "a", "copy",
		"What to do with the link: copy or open")
	rootCmd.Flags().StringVarP(&remoteName, "remote", "r", "",
		"Remote to link to (overrides settings)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runGenerate executes the link generation logic with injected dependencies.
func runGenerate(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	linkTypeValue, err := parseLinkType(linkType)
	if err != nil {
		return err
	}

	actionValue, err := parseAction(action)
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Make the configured log settings visible to the logger factory unless
	// the environment already decided them.
	if os.Getenv("LOG_LEVEL") == "" {
		if err := os.Setenv("LOG_LEVEL", cfg.LogLevel); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}
	if os.Getenv("LOG_APP_NAME") == "" {
		if err := os.Setenv("LOG_APP_NAME", cfg.LogAppName); err != nil {
			writeWarningf(stderr, "warning: could not set log app name: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	log.Info(ctx, "starting gitweblinks", map[string]interface{}{
		"target":  target,
		"type":    string(linkTypeValue),
		"action":  string(actionValue),
		"verbose": verbose,
	})

	// Capture the invoking editor's state from the flags
	editor, err := deps.EditorFactory(activeFile, selection)
	if err != nil {
		log.Error(ctx, "failed to read editor state", err, nil)
		return err
	}

	// The remote flag wins over the configured preference.
	if remoteName != "" {
		cfg.PreferredRemote = remoteName
	}

	// Assemble the link generation pipeline
	generator, waiter, err := deps.GeneratorFactory(cfg, editor, log)
	if err != nil {
		log.Error(ctx, "failed to initialize link generation", err, nil)
		return fmt.Errorf("initialization error: %w", err)
	}

	result, err := generator.Execute(ctx, domain.GenerateInput{
		Target:           target,
		Type:             linkTypeValue,
		IncludeSelection: !noSelection,
		Action:           actionValue,
	})
	if err != nil {
		log.Error(ctx, "link generation failed", err, nil)
		waiter.Wait()
		return err
	}

	log.Info(ctx, "link generated", map[string]interface{}{
		"url":     result.URL,
		"handler": result.Handler,
		"file":    result.File,
	})

	// A notification follow-up may still be running; let it finish before
	// the process exits.
	waiter.Wait()

	return nil
}

// parseLinkType maps the --type flag to a link type. An empty flag defers
// the choice to settings.
func parseLinkType(value string) (domain.LinkType, error) {
	switch value {
	case "":
		return domain.LinkTypeDefer, nil
	case "commit":
		return domain.LinkTypeCommit, nil
	case "branch":
		return domain.LinkTypeBranch, nil
	case "default":
		return domain.LinkTypeDefaultBranch, nil
	default:
		return domain.LinkTypeDefer, fmt.Errorf("invalid --type %q: want commit, branch or default", value)
	}
}

// parseAction maps the --action flag to a link action.
func parseAction(value string) (domain.LinkAction, error) {
	switch value {
	case "copy":
		return domain.ActionCopy, nil
	case "open":
		return domain.ActionOpen, nil
	default:
		return "", fmt.Errorf("invalid --action %q: want copy or open", value)
	}
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Failures the notifier already showed to the user are not printed
		// again.
		if !domain.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}

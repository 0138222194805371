// Package main is the entry point for the gitweblinks CLI application.
// gitweblinks turns a file in a Git working copy into a shareable web link
// on its hosting service, printing only the link for consumption by shells
// and editor integrations.
package main

import (
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"
	"github.com/samber/lo"

	"github.com/miskreant/GitWebLinks/cmd"
	"github.com/miskreant/GitWebLinks/internal/adapters/browser"
	"github.com/miskreant/GitWebLinks/internal/adapters/clipboard"
	"github.com/miskreant/GitWebLinks/internal/adapters/editor"
	"github.com/miskreant/GitWebLinks/internal/adapters/git"
	logadapter "github.com/miskreant/GitWebLinks/internal/adapters/logger"
	"github.com/miskreant/GitWebLinks/internal/adapters/notify"
	"github.com/miskreant/GitWebLinks/internal/adapters/output"
	"github.com/miskreant/GitWebLinks/internal/adapters/settings"
	"github.com/miskreant/GitWebLinks/internal/domain"
	"github.com/miskreant/GitWebLinks/internal/handlers"
	"github.com/miskreant/GitWebLinks/internal/infrastructure/config"
	"github.com/miskreant/GitWebLinks/internal/usecases"
)

func main() {
	// Create a single shared logger instance for the application
	zapLog := logger.NewZapLoggerFromConfig()
	adapter := logadapter.NewZapAdapter(zapLog)

	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				LinkType:        cfg.LinkType,
				PreferredRemote: cfg.PreferredRemote,
				DefaultBranch:   cfg.DefaultBranch,
				UseShortHash:    cfg.UseShortHash,
				ShowCopyMessage: cfg.ShowCopyMessage,
				Servers:         cfg.Servers,
				LogLevel:        cfg.LogLevel,
				LogAppName:      cfg.LogAppName,
			}, nil
		},

		EditorFactory: func(activeFile, selection string) (domain.Editor, error) {
			return editor.NewState(activeFile, selection)
		},

		GeneratorFactory: func(
			cfg *cmd.AppConfig,
			editorState domain.Editor,
			_ cmd.Logger,
		) (domain.LinkGenerator, cmd.Waiter, error) {
			servers, ok := cfg.Servers.(config.Servers)
			if !ok {
				return nil, nil, newConfigTypeError("config.Servers")
			}

			finder := git.NewFinder(adapter, cfg.UseShortHash, cfg.DefaultBranch)
			selector := handlers.Defaults(finder, convertServers(servers))
			notifier := notify.NewTerminal()
			dispatcher := usecases.NewDispatcher(
				clipboard.NewSystem(),
				browser.NewOpener(),
				settings.NewFileOpener(config.Path(), []byte(config.Template)),
				notifier,
				adapter,
				cfg.ShowCopyMessage,
			)

			pipeline := usecases.NewPipeline(usecases.PipelineDeps{
				Editor:     editorState,
				Finder:     finder,
				Selector:   selector,
				Dispatcher: dispatcher,
				Notifier:   notifier,
				Writer:     output.NewWriter(),
				Logger:     adapter,
			}, usecases.Options{
				PreferredRemote: cfg.PreferredRemote,
				DefaultLinkType: domain.LinkType(cfg.LinkType),
			})

			return pipeline, dispatcher, nil
		},

		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}

// convertServers maps the configured servers into the handler registry form.
func convertServers(servers config.Servers) handlers.ServerSet {
	return handlers.ServerSet{
		GitHub: toHandlerServers(servers.GitHub),
		GitLab: toHandlerServers(servers.GitLab),
		Gitea:  toHandlerServers(servers.Gitea),
	}
}

func toHandlerServers(servers []config.Server) []handlers.Server {
	return lo.Map(servers, func(s config.Server, _ int) handlers.Server {
		return handlers.Server{BaseURL: s.BaseURL, SSHHost: s.SSHHost}
	})
}

func newConfigTypeError(expected string) error {
	return &configTypeError{expected: expected}
}

// configTypeError is returned when configuration type assertion fails.
type configTypeError struct {
	expected string
}

func (e *configTypeError) Error() string {
	return "invalid configuration type: expected " + e.expected
}

// Package cli holds the secretsanta command tree: the HTTP server, a one-shot draw
// from a participants file and an organizer token helper.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"secretsanta/config"
	"secretsanta/internal/adapters/email"
	"secretsanta/internal/domain"
)

// deps are the seams the commands reach the outside world through.
type deps struct {
	loadConfig func() (*config.Config, error)
	newMailer  func(email.MailerConfig) (domain.Mailer, error)
	newLogger  func(io.Writer) *slog.Logger
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.Load,
		newMailer:  email.NewMailer,
		newLogger:  config.NewLoggerTo,
	}
}

// NewRootCommand returns the secretsanta command with all subcommands attached.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, defaultDeps())
}

func newRootCommand(version string, d deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "secretsanta",
		Short: "Draw Secret Santa names and email every participant",
		Long: `secretsanta draws a single gifting cycle among up to eight participants and
emails each giver the name, gift idea, date and budget of the person they drew.

Configuration is read from the environment (and .env outside production).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCommand(d), newDrawCommand(d), newTokenCommand(d))
	return root
}

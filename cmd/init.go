package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-commitizen/internal/git"
	ghprovider "github.com/MyCarrier-DevOps/go-commitizen/internal/github"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/output"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/precommit"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/rules"
	"github.com/MyCarrier-DevOps/go-commitizen/internal/wizard"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagToken      string
	flagAppID      int64
	flagAppKey     string
	flagAppKeyPath string
	flagAppOwner   string
	flagGitHubURL  string
	flagAccessible bool
)

var errNotTerminal = errors.New("cz init is interactive and needs a terminal on stdin")

// stdinIsTerminal reports whether stdin is attached to a terminal.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Init commitizen configuration",
	Long: `Interactively create a commitizen configuration file and optionally
install the commitizen pre-commit hooks.

Development builds pin the hook to the latest commitizen release, read
from the GitHub API. Authentication is optional and checked in order:
  1. --github-token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key (PEM content) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars
  3. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars
App authentication also needs --github-app-owner or GH_APP_OWNER.`,
	Args: cobra.NoArgs,
	RunE: initRunE,
}

func init() {
	initCmd.Flags().StringVar(&flagToken, "github-token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	initCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	initCmd.Flags().StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	initCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	initCmd.Flags().StringVar(&flagAppOwner, "github-app-owner", "", "account the GitHub App is installed on (or set GH_APP_OWNER env var)")
	initCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	initCmd.Flags().BoolVar(&flagAccessible, "accessible", false, "use plain line prompts instead of the interactive UI")

	rootCmd.AddCommand(initCmd)
}

func initRunE(cmd *cobra.Command, _ []string) error {
	if !stdinIsTerminal() {
		return errNotTerminal
	}

	log, err := output.NewLogger(cmd.ErrOrStderr(), flagVerbosity)
	if err != nil {
		return err
	}

	prompter := &wizard.HuhPrompter{
		Theme:      rules.ThemeFor(rules.Default),
		Accessible: flagAccessible,
	}
	w, err := newWizard(cmd, log, prompter)
	if err != nil {
		return err
	}

	_, err = w.Run(cmd.Context())
	return err
}

// newWizard wires the init wizard for the project at --path. A directory
// that is not a git repository has no tags.
func newWizard(cmd *cobra.Command, log logr.Logger, prompter wizard.Prompter) (*wizard.Wizard, error) {
	dir, err := filepath.Abs(flagPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	tags := git.NewTagStore(nil)
	if repo, err := git.Open(dir); err != nil {
		log.V(1).Info("continuing without git tags", "path", dir, "error", err.Error())
	} else {
		tags = git.NewTagStore(repo)
	}

	return &wizard.Wizard{
		Dir:       dir,
		Prompter:  prompter,
		Tags:      tags,
		Printer:   output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		Installer: precommit.NewInstaller(dir),
		Log:       log,
		HookRevision: func(ctx context.Context) string {
			return ghprovider.HookRevision(ctx, log, Version, latestRelease)
		},
	}, nil
}

// latestRelease creates the GitHub client on first use so release builds
// never touch the network.
func latestRelease(ctx context.Context, owner, repo string) (string, error) {
	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKey:     flagAppKey,
		AppKeyPath: flagAppKeyPath,
		Owner:      flagAppOwner,
		BaseURL:    flagGitHubURL,
	})
	if err != nil {
		return "", fmt.Errorf("creating GitHub client: %w", err)
	}
	return ghprovider.LatestRelease(client)(ctx, owner, repo)
}

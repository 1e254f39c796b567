package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

var (
	configDir string
	dryRun    bool
)

// collectionKeys は移行対象となるすべてのキー
var collectionKeys = []string{
	service.ProjectCollection,
	service.PostCollection,
	service.CommentCollection,
	service.TimelineCollection,
	service.PromptCollection,
	service.ContactCollection,
	service.StatsDocument,
}

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the remote KV tier of the portfolio backend",
	Long: `migrate prepares the remote KV tier and copies collections between
the remote tier and the JSON files under DATA_DIR.

Examples:
  migrate schema
  migrate push --dry-run
  migrate pull`,
	SilenceUsage: true,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the kv_store table on postgres, sqlite or libsql",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, remote, closeRemote, err := openRemote(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRemote()

		se, ok := remote.(repository.SchemaEnsurer)
		if !ok {
			slog.Info("backend has no schema, nothing to do", "backend", cfg.KV.Backend)
			return nil
		}
		if err := se.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		slog.Info("schema ready", "backend", remote.Name())
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Copy every collection file from DATA_DIR to the remote tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, remote, closeRemote, err := openRemote(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRemote()

		n, err := copyKeys(cmd.Context(), repository.NewFileBackend(cfg.DataDir), remote, collectionKeys, dryRun)
		slog.Info("push finished", "copied", n, "dry_run", dryRun)
		return err
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Copy every collection from the remote tier into DATA_DIR",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, remote, closeRemote, err := openRemote(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRemote()

		n, err := copyKeys(cmd.Context(), remote, repository.NewFileBackend(cfg.DataDir), collectionKeys, dryRun)
		slog.Info("pull finished", "copied", n, "dry_run", dryRun)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	pushCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be copied without writing")
	pullCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be copied without writing")
	rootCmd.AddCommand(schemaCmd, pushCmd, pullCmd)
}

func openRemote(ctx context.Context) (*config.Config, repository.Backend, func(), error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, nil, err
	}
	logging.Setup(cfg.LogLevel)

	remote, closeRemote, err := repository.OpenRemote(ctx, cfg.KV)
	if err != nil {
		return nil, nil, nil, err
	}
	if remote == nil {
		closeRemote()
		return nil, nil, nil, errors.New("KV_BACKEND is none; set a remote backend to migrate")
	}
	return cfg, remote, closeRemote, nil
}

func main() {
	_ = godotenv.Load()
	logging.Setup("INFO")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/deskflow-ai/deskflow/internal/config"
	"github.com/deskflow-ai/deskflow/internal/database"
	"github.com/deskflow-ai/deskflow/internal/ingest"
	"github.com/deskflow-ai/deskflow/internal/repository"
	"github.com/spf13/cobra"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import historical tickets from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			tickets, err := ingest.LoadHistoricalCSV(args[0])
			if err != nil {
				return err
			}

			pool, err := database.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			inserted, err := repository.NewHistoricalRepository(pool).InsertBatch(ctx, tickets)
			if err != nil {
				return fmt.Errorf("imported %d of %d tickets: %w", inserted, len(tickets), err)
			}
			log.Printf("imported %d historical tickets from %s", inserted, args[0])
			return nil
		},
	}
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with synthetic historical tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			count, _ := cmd.Flags().GetInt("count")
			tickets := ingest.GenerateHistoricalTickets(count, nil)

			pool, err := database.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			inserted, err := repository.NewHistoricalRepository(pool).InsertBatch(ctx, tickets)
			if err != nil {
				return fmt.Errorf("seeded %d of %d tickets: %w", inserted, len(tickets), err)
			}
			log.Printf("seeded %d synthetic historical tickets", inserted)
			return nil
		},
	}

	cmd.Flags().Int("count", 100, "Number of tickets to generate")
	return cmd
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runMigrations(cfg.DatabaseURL)
		},
	}
}

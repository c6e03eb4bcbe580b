package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/config"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/database"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply and inspect Nestly database migrations",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(upCmd(), statusCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openMigrator() (*database.Migrator, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return m, db, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, db, err := openMigrator()
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return nil
			}

			for _, mig := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %03d_%s\n", mig.Version, mig.Name)
			}

			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, db, err := openMigrator()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")

			for _, st := range statuses {
				applied := "pending"
				if st.AppliedAt != nil {
					applied = st.AppliedAt.Format(time.RFC3339)
				}

				fmt.Fprintf(tw, "%03d\t%s\t%s\n", st.Version, st.Name, applied)
			}

			return tw.Flush()
		},
	}
}

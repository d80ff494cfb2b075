package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/osa911/hostelhub/internal/auth"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/config"
	"github.com/osa911/hostelhub/internal/db"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/reports"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/storage"
	"github.com/osa911/hostelhub/internal/version"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var schemaVersion int64
		err = withSpinner(" Applying migrations...", func() error {
			schemaVersion, err = db.Migrate(cmd.Context(), cfg.DatabaseURL)
			return err
		})
		if err != nil {
			return err
		}

		fmt.Printf("Database schema is at version %d\n", schemaVersion)
		return nil
	},
}

var seedPlansCmd = &cobra.Command{
	Use:   "seed-plans",
	Short: "Create the default Veg and Non-Veg plans if the catalog is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStorage(cmd.Context(), func(cfg *config.Config, store *storage.Storage) error {
			n, err := service.NewPlanService(store.Repos.Plans).SeedDefaultPlans(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Plan catalog is not empty; nothing to seed")
				return nil
			}
			fmt.Printf("Created %d meal plans\n", n)
			return nil
		})
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing user to admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")

		generated := password == ""
		if generated {
			var err error
			if password, err = auth.RandomPassword(); err != nil {
				return fmt.Errorf("failed to generate password: %w", err)
			}
		}

		return withStorage(cmd.Context(), func(cfg *config.Config, store *storage.Storage) error {
			svc := service.NewAuthService(store.Repos.Users, auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL), nil)
			user, err := svc.EnsureAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return errors.New(service.Message(err, err.Error()))
			}

			fmt.Printf("Admin %s <%s> is ready (id %s)\n", user.Name, user.Email, user.ID)
			if generated {
				fmt.Printf("Generated password: %s\n", password)
			}
			return nil
		})
	},
}

var exportSummaryCmd = &cobra.Command{
	Use:   "export-summary",
	Short: "Write a period's mess summary to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		periodFlag, _ := cmd.Flags().GetString("period")
		out, _ := cmd.Flags().GetString("out")

		return withStorage(cmd.Context(), func(cfg *config.Config, store *storage.Storage) error {
			period, err := resolvePeriod(cfg, periodFlag)
			if err != nil {
				return err
			}
			if out == "" {
				out = reports.FileName(period)
			}

			var data []byte
			err = withSpinner(fmt.Sprintf(" Building summary for %s...", period), func() error {
				data, err = service.NewMembershipService(store.Repos, nil).ExportSummary(cmd.Context(), period)
				return err
			})
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hostelctl %s\n", version.Info())
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Configure(cfg.Logging())
	if cfg.StorageDriver != config.StoragePostgres {
		return nil, fmt.Errorf("hostelctl needs STORAGE_DRIVER=postgres, got %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func withStorage(ctx context.Context, fn func(cfg *config.Config, store *storage.Storage) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// resolvePeriod parses flag, or takes the current month in the hostel's timezone.
func resolvePeriod(cfg *config.Config, flag string) (billing.Period, error) {
	if flag != "" {
		return billing.ParsePeriod(flag)
	}
	clock, err := billing.NewClock(cfg.Timezone)
	if err != nil {
		return "", err
	}
	_, period := clock.Current()
	return period, nil
}

func withSpinner(suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	s.Suffix = suffix
	s.Writer = os.Stderr
	s.Start()
	err := fn()
	s.Stop()
	return err
}

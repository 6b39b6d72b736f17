package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

var (
	reportUserID     uint
	reportTelegramID int64
	reportDate       string
	reportSQLite     string
	reportTimezone   string
	reportJSON       bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the weekly report for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportUserID == 0 && reportTelegramID == 0 {
			return fmt.Errorf("one of --user or --telegram-id is required")
		}

		dbCfg, loc, err := reportSettings()
		if err != nil {
			return err
		}
		db, err := database.Open(dbCfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := services.NewUserService(repository.NewUserRepository(db))
		reports := services.NewReportService(repository.NewLogRepository(db), nil, loc)

		ctx := context.Background()
		var user *domain.User
		if reportUserID != 0 {
			user, err = users.GetUser(ctx, reportUserID)
		} else {
			user, err = users.GetUserByTelegramID(ctx, reportTelegramID)
		}
		if err != nil {
			return err
		}

		today := reports.Today()
		if reportDate != "" {
			today, err = utils.ParseDay(reportDate, loc)
			if err != nil {
				return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", reportDate)
			}
		}

		dashboard, err := reports.Dashboard(ctx, user.ID, today)
		if err != nil {
			return err
		}

		if reportJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dashboard)
		}
		fmt.Fprintln(cmd.OutOrStdout(), menus.FormatWeeklyReport(dashboard))
		return nil
	},
}

// reportSettings uses --sqlite when given, otherwise the environment config
func reportSettings() (config.DBConfig, *time.Location, error) {
	if reportSQLite != "" {
		loc, err := time.LoadLocation(reportTimezone)
		if err != nil {
			return config.DBConfig{}, nil, fmt.Errorf("invalid --timezone %q: %w", reportTimezone, err)
		}
		return config.DBConfig{Driver: "sqlite", SQLitePath: reportSQLite}, loc, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return config.DBConfig{}, nil, err
	}
	return cfg.DB, cfg.Location(), nil
}

func init() {
	reportCmd.Flags().UintVar(&reportUserID, "user", 0, "Internal user id")
	reportCmd.Flags().Int64Var(&reportTelegramID, "telegram-id", 0, "Telegram user id")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Last day of the report (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportSQLite, "sqlite", "", "Read from this SQLite file instead of the configured database")
	reportCmd.Flags().StringVar(&reportTimezone, "timezone", "UTC", "Timezone for --sqlite")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the dashboard as JSON")
}

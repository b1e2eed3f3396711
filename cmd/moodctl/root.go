package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yungbote/moodtracker-backend/internal/app"
	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/pkg/ctxutil"
	"github.com/yungbote/moodtracker-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/moodtracker-backend/internal/pkg/errors"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "moodctl",
	Short:         "Operate on the mood tracker database",
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)

	rootCmd.PersistentFlags().String("db-driver", "", "Database driver: postgres or sqlite")
	rootCmd.PersistentFlags().String("postgres-dsn", "", "Postgres connection URL")
	rootCmd.PersistentFlags().String("sqlite-path", "", "SQLite database file")
	rootCmd.PersistentFlags().String("app-timezone", "", "Time zone that defines \"today\"")
	rootCmd.PersistentFlags().String("log-mode", "production", "Logger mode: production, development or test")
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

// initConfig maps flag names onto the server's environment keys, so
// --db-driver and DB_DRIVER name the same setting.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

type session struct {
	log      *logger.Logger
	db       *datadb.Service
	cfg      app.Config
	users    repos.UserRepo
	entries  services.MoodEntryService
	analysis services.MoodAnalyticsService
}

func openSession(migrate bool) (*session, error) {
	log, err := logger.New(viper.GetString("log-mode"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg, err := app.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("db-driver"); v != "" {
		cfg.Database.Driver = v
	}
	if v := viper.GetString("postgres-dsn"); v != "" {
		cfg.Database.DSN = v
	}
	if v := viper.GetString("sqlite-path"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := viper.GetString("app-timezone"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", v, err)
		}
		cfg.Location = loc
	}
	cfg.Database.AutoMigrate = migrate

	dbService, err := app.OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	db := dbService.DB()
	entryRepo := repos.NewMoodEntryRepo(db, log)
	clock := services.SystemClock(cfg.Location)
	return &session{
		log:      log,
		db:       dbService,
		cfg:      cfg,
		users:    repos.NewUserRepo(db, log),
		entries:  services.NewMoodEntryService(db, log, entryRepo, clock),
		analysis: services.NewMoodAnalyticsService(db, log, entryRepo, clock),
	}, nil
}

func (s *session) Close() {
	_ = s.db.Close()
	s.log.Sync()
}

// actAs resolves email and returns a context carrying that user, the same
// shape the HTTP auth middleware produces.
func (s *session) actAs(ctx context.Context, email string) (context.Context, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.Mark(pkgerrors.ErrInvalidArgument, "--user is required")
	}
	found, err := s.users.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, pkgerrors.Mark(pkgerrors.ErrNotFound, "no user with email %s", email)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: found[0].ID}), nil
}

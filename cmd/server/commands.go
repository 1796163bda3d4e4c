package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/config"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/gateway"
	"github.com/risegum/internal/handler"
	"github.com/risegum/internal/logging"
	"github.com/risegum/internal/router"
	"github.com/risegum/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// newRootCommand 构建命令树；不带子命令时等同于 serve。
func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "risegum",
		Short:         "Rise Gum landing page and waitlist backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.FromViper(v)
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.FromViper(v))
		},
	}

	flags := root.PersistentFlags()
	flags.String("port", "", "HTTP port (env PORT)")
	flags.String("database-path", "", "SQLite database file (env DATABASE_PATH)")
	flags.String("backend-url", "", "waitlist API base URL, without /api (env BACKEND_URL)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("database_path", flags.Lookup("database-path"))
	_ = v.BindPFlag("backend_url", flags.Lookup("backend-url"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newServeCommand(v),
		newInitUserCommand(v),
		newWaitlistCommand(v),
		newPingCommand(v),
		newSeedCommand(v),
	)
	return root
}

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.FromViper(v))
		},
	}
}

func runServe(parent context.Context, cfg config.AppConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	ensureSuperRoot(cfg)

	welcome := service.NewWelcomeSender(service.NewResendMailer(service.MailerConfig{
		APIKey:   cfg.ResendAPIKey,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		TestMode: cfg.EmailTestMode,
	}))

	r := router.SetupRouter(router.Options{
		SessionSecret:     cfg.SessionSecret,
		CORSOrigins:       cfg.CORSOrigins,
		MetricsAllowedIPs: cfg.MetricsAllowedIPs,
		TrustedProxies:    cfg.TrustedProxies,
		Handler: handler.Options{
			Gateway:       gateway.New(cfg.BackendURL, gateway.WithAdminToken(cfg.AdminAPIToken)),
			Welcome:       welcome,
			AdminToken:    cfg.AdminAPIToken,
			SiteURL:       cfg.SiteBaseURL,
			RatePerMinute: cfg.WaitlistRatePerMinute,
			SecureCookies: gin.Mode() == gin.ReleaseMode,
		},
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("backend", cfg.BackendURL).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// 请求已全部结束，再等待后台确认邮件发完
	if err := welcome.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("confirmation emails still pending at exit")
	}
	return nil
}

func ensureSuperRoot(cfg config.AppConfig) {
	if cfg.SuperRootUserName == "" || cfg.SuperRootPassword == "" {
		log.Warn().Msg("SUPER_ROOT_USER_NAME or SUPER_ROOT_PASSWORD not set, admin login disabled until a user exists")
		return
	}
	created, err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword)
	if err != nil {
		log.Error().Err(err).Msg("ensure super root user failed")
		return
	}
	if created {
		log.Info().Str("username", cfg.SuperRootUserName).Msg("super root user created")
	}
}

func newInitUserCommand(v *viper.Viper) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "init-user",
		Short: "Create an admin user if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			if err := db.Init(cfg.DatabasePath); err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}
			created, err := db.EnsureUser(db.DB, username, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists\n", username)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWaitlistCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect the waitlist through the backend API",
	}

	var skip, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List waitlist entries (requires ADMIN_API_TOKEN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			gw := gateway.New(cfg.BackendURL, gateway.WithAdminToken(cfg.AdminAPIToken))

			res, err := gw.ListEntries(cmd.Context(), skip, limit)
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("list waitlist: %s", res.Error)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "JOINED\tNAME\tEMAIL\tCITY")
			for _, e := range res.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Name, e.Email, e.City)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d entries\n", len(res.Entries), res.Count)
			return nil
		},
	}
	list.Flags().IntVar(&skip, "skip", 0, "entries to skip")
	list.Flags().IntVar(&limit, "limit", service.DefaultWaitlistLimit, "maximum entries to return")

	cmd.AddCommand(list)
	return cmd
}

func newPingCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend API answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			gw := gateway.New(cfg.BackendURL)

			res, err := gw.Health(cmd.Context())
			if err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("backend at %s answered %d: %s", gw.BaseURL(), res.StatusCode, res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", gw.BaseURL(), res.Message)
			return nil
		},
	}
}

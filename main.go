package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/portfolio-uploads/config"
	domain "github.com/example/portfolio-uploads/domain/upload"
	contentmod "github.com/example/portfolio-uploads/modules/content"
	httpservermod "github.com/example/portfolio-uploads/modules/httpserver"
	uploadsmod "github.com/example/portfolio-uploads/modules/uploads"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "portfolio-uploads",
		Short:        "Portfolio site API with managed file uploads",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default ./config.yaml if present)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "token <subject>",
		Short: "Print an admin bearer token for subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tokens := httpservermod.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			token, err := tokens.Issue(args[0], httpservermod.RoleAdmin, cfg.Auth.TokenTTL)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})

	return rootCmd
}

// serve runs the application until a shutdown signal arrives.
func serve(cfg *config.Config) error {
	profiles, err := loadProfiles(cfg)
	if err != nil {
		return fmt.Errorf("invalid upload profile: %w", err)
	}

	log.Println("=== Portfolio Uploads ===")
	log.Printf("HTTP Port: %d", cfg.HTTP.Port)
	log.Printf("Storage Root: %s", cfg.Storage.Root)
	log.Printf("Database: %s", cfg.Database.Path)

	logLevel := mono.LogLevelInfo
	if cfg.Log.Level == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		return fmt.Errorf("failed to create mono application: %w", err)
	}

	// Create modules
	tokens := httpservermod.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	uploadsModule := uploadsmod.NewModule(cfg.Storage.Root, app.Logger())
	contentModule := contentmod.NewModule(cfg.Database.Path, cfg.Database.Debug, profiles, app.Logger())
	httpServerModule := httpservermod.NewModule(cfg.HTTP.Port, cfg.HTTP.MaxMultipartMemory, tokens, app.Logger())

	// Wire up dependencies
	contentModule.SetUploadsModule(uploadsModule)
	httpServerModule.SetUploadsModule(uploadsModule)
	httpServerModule.SetContentModule(contentModule)

	// Register modules in start order
	for _, module := range []mono.Module{uploadsModule, contentModule, httpServerModule} {
		if err := app.Register(module); err != nil {
			return fmt.Errorf("failed to register %s module: %w", module.Name(), err)
		}
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", cfg.HTTP.Port)
	log.Println("Endpoints:")
	log.Println("  GET    /health                              - Health check")
	log.Println("  GET    /uploads/*filepath                   - Stored files")
	log.Println("  GET    /api/v1/{projects,testimonials,team} - Public records")
	log.Println("  POST   /api/v1/admin/{kind}                 - Create record (multipart)")
	log.Println("  PUT    /api/v1/admin/{kind}/:id             - Update record (multipart)")
	log.Println("  DELETE /api/v1/admin/{kind}/:id             - Delete record and its files")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
	return nil
}

// loadProfiles builds the per-record upload profiles with configured limits applied.
func loadProfiles(cfg *config.Config) (contentmod.Profiles, error) {
	var profiles contentmod.Profiles
	for name, target := range map[string]*domain.Config{
		domain.ProfileProjectAttachments: &profiles.Projects,
		domain.ProfileTestimonialPhoto:   &profiles.Testimonials,
		domain.ProfileTeamPhoto:          &profiles.Team,
	} {
		profile, err := cfg.Profile(name)
		if err != nil {
			return contentmod.Profiles{}, err
		}
		if err := profile.Validate(); err != nil {
			return contentmod.Profiles{}, err
		}
		*target = profile
	}
	return profiles, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/noelruault/awstop/internal/aws"
	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/logging"
	"github.com/noelruault/awstop/internal/ui/window"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "awstop",
		Short: "Live terminal dashboard for EC2, S3 and Lambda",
		Long: `awstop polls an AWS account and shows its EC2 instances, S3 buckets
or Lambda functions in a full-screen table that refreshes every second.

Credentials come from the usual AWS chain (environment, shared config,
instance role) unless a key pair or session token is given on the command
line.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.SetVersionTemplate(`{{printf "awstop version %s\n" .Version}}`)

	f := cmd.Flags()
	f.StringP("access-key", "a", "", "AWS access key ID")
	f.StringP("secret-key", "s", "", "AWS secret access key")
	f.StringP("session-token", "S", "", "AWS session token")
	f.StringP("region", "r", "", "initial region (default $AWS_REGION, $AWS_DEFAULT_REGION or us-east-1)")
	f.StringP("profile", "p", "", "shared config profile")
	f.String("service", "", "initial service: EC2, S3, Lambda or DynamoDB")
	f.DurationP("interval", "i", 0, "refresh interval (default 1s)")
	f.StringP("config", "c", "", "config file (default $XDG_CONFIG_HOME/awstop/config.yaml)")
	f.String("log-file", "", "append logs to this file")
	f.Bool("debug", false, "log at debug level")

	return cmd
}

// configFromFlags layers explicitly set flags over the config file.
func configFromFlags(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("region", &cfg.Region)
	str("profile", &cfg.Profile)
	str("log-file", &cfg.LogFile)
	str("access-key", &cfg.AccessKey)
	str("secret-key", &cfg.SecretKey)
	str("session-token", &cfg.SessionToken)

	if f.Changed("service") {
		name, _ := f.GetString("service")
		service, err := config.ParseService(name)
		if err != nil {
			return nil, err
		}
		cfg.Service = service
	}
	if f.Changed("interval") {
		cfg.RefreshInterval, _ = f.GetDuration("interval")
	}
	if debug, _ := f.GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfig, err)
	}
	logger, closeLog, err := logging.Open(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting",
		"version", version,
		"region", cfg.Region,
		"service", cfg.Service,
		"interval", cfg.RefreshInterval.String(),
	)

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	client, err := aws.NewClient(loadCtx, aws.Options{
		Region:       cfg.Region,
		Profile:      cfg.Profile,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretKey,
		SessionToken: cfg.SessionToken,
	})
	if err != nil {
		return err
	}

	m, err := window.New(client, cfg, window.WithLogger(logger))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if err := m.Err(); err != nil {
		logger.Error("exiting", "err", err)
		return err
	}
	return nil
}

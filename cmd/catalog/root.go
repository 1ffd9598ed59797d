package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/pkg/logging"
)

type rootOptions struct {
	envFile  string
	baseURL  string
	redisURL string
	logLevel string
	pretty   bool

	app *app
}

// run executes the command line in args and releases the wired app
// afterwards, whether or not the command succeeded.
func run(ctx context.Context, d deps, args []string, stdout, stderr io.Writer) error {
	root, opts := newRootCmd(d)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() {
		if opts.app != nil {
			opts.app.Close()
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(d deps) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse the paginated item catalog",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadDotEnv(opts.envFile); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := opts.applyFlags(cmd, &cfg); err != nil {
				return err
			}

			logger := logging.Setup(logging.Config{
				Level:  cfg.LogLevel,
				Pretty: cfg.LogPretty,
				Output: cmd.ErrOrStderr(),
			})

			a, err := newApp(cmd.Context(), cfg, d, logger)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.baseURL, "base-url", "", "catalog API root (env CATALOG_BASE_URL)")
	flags.StringVar(&opts.redisURL, "redis", "", "Redis address or URL for the response cache (env REDIS_URL)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.BoolVar(&opts.pretty, "pretty", false, "human-readable logs (env LOG_PRETTY)")

	root.AddCommand(
		listCmd(opts),
		showCmd(opts),
		browseCmd(opts),
		exportCmd(opts),
		serveCmd(opts),
	)
	return root, opts
}

func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *config) error {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("redis") {
		cfg.RedisURL = o.redisURL
	}
	if flags.Changed("log-level") {
		level, err := logging.ParseLogLevel(o.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if flags.Changed("pretty") {
		cfg.LogPretty = o.pretty
	}
	return nil
}

// Command spacebio-browse drives the dashboard filter controller against a running API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"spacebio/internal/adapters/dashboard"
	"spacebio/internal/platform/logger"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	api      string
	email    string
	password string
	timeout  time.Duration
	verbose  bool
}

func rootCommand() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "spacebio-browse",
		Short:         "Browse the space biology experiment catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := "warn"
			if g.verbose {
				level = "debug"
			}
			logger.Init(logger.Options{Level: level, Format: "console", Service: "spacebio-browse", Writer: os.Stderr})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.api, "api", envOr("SPACEBIO_API", "http://localhost:4000"), "API base URL")
	pf.StringVar(&g.email, "email", os.Getenv("SPACEBIO_EMAIL"), "login email; catalog routes need a session unless the API is public")
	pf.StringVar(&g.password, "password", os.Getenv("SPACEBIO_PASSWORD"), "login password")
	pf.DurationVar(&g.timeout, "timeout", 10*time.Second, "per request timeout")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log every request")

	root.AddCommand(browseCommand(&g), statsCommand(&g))
	return root
}

// session builds a client and logs in when credentials were given
func (g *globalFlags) session(ctx context.Context) (*dashboard.Client, error) {
	c := dashboard.NewClient(dashboard.Options{BaseURL: g.api, Timeout: g.timeout})
	if g.email == "" {
		return c, nil
	}
	if _, err := c.Login(ctx, g.email, g.password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return c, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"backoffice/internal/adapters/notify"
	"backoffice/internal/adapters/restapi"
	"backoffice/internal/modkit"
	"backoffice/internal/modkit/module"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"

	brandsmod "backoffice/internal/services/brands/module"
	usersmod "backoffice/internal/services/users/module"
)

// Global flag values
var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagJSON    bool
)

// modules holds the live resource modules for the lifetime of one command
var modules []module.Module

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Backoffice is an admin console for users and brands",
	Long: `Backoffice manages the console's resource collections (users, brands)
against the remote admin API. Its stores deduplicate and cancel in-flight
calls, cache repeated list queries, and classify failures into typed,
operator-presentable errors.`,
	PersistentPreRunE:  bootModules,
	PersistentPostRunE: closeModules,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "admin API base URL (default: $BACKOFFICE_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-call timeout (default 5s)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(brandsCmd)
}

// bootModules wires config, logging, the REST client, and both resource
// modules before any subcommand runs
func bootModules(cmd *cobra.Command, args []string) error {
	root := config.New().Prefix("BACKOFFICE_")
	log := logger.Get()

	baseURL := flagAPIURL
	if baseURL == "" {
		baseURL = root.MustString("API_URL")
	}
	timeout := flagTimeout
	if timeout <= 0 {
		timeout = root.MayDuration("API_TIMEOUT", 5*time.Second)
	}

	rest := restapi.New(restapi.Options{
		BaseURL: baseURL,
		Timeout: timeout,
	})

	deps := modkit.Deps{
		Log:    *log,
		Cfg:    root,
		REST:   rest,
		Notify: notify.NewLog("console"),
	}

	for _, m := range []module.Module{usersmod.New(deps), brandsmod.New(deps)} {
		module.Register(m.Name(), m.Ports())
		modules = append(modules, m)
	}
	return nil
}

// closeModules tears every store down: cancels in-flight calls, stops timers
func closeModules(cmd *cobra.Command, args []string) error {
	for _, m := range modules {
		m.Close()
	}
	modules = nil
	module.Reset()
	return nil
}

// emitJSON renders v as indented JSON on stdout
func emitJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

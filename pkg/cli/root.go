// Copyright (c) 2026, Promstack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/promstack/provisioner/pkg/logging"
)

const (
	name           = "promprov"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	cfgFile  string
	logLevel string

	specFile string
	output   string
	format   string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   name,
	Short: "promprov - metrics daemon provisioner",
	Long: fmt.Sprintf(`promprov - metrics daemon provisioner

Version: %s
Commit:  %s
Built:   %s

Converges a single host to a declared metrics-daemon state:

apply - install the daemon binary, render its configuration and alert
        rules, and converge the service, restarting or reloading it only
        when the relevant artifacts changed.
plan  - inspect the host read-only and list what apply would change.
facts - print the host facts (OS, architecture, init style) a run uses.`,
		version, commit, date),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.promprov.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&specFile, "spec", "s", "", "provisioning spec file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "yaml", "output format (json, yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// Fail fast if user-specified config doesn't exist
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".promprov")
		_ = viper.ReadInConfig()
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PROMPROV")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// initLogger configures slog after Cobra parses flags/config so overrides
// like --log-level take effect before any command executes.
func initLogger() {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
}

// resolveSpecPath returns the spec file path from the --spec flag, falling
// back to the config file / environment (PROMPROV_SPEC).
func resolveSpecPath() (string, error) {
	if specFile != "" {
		return specFile, nil
	}
	if fromConfig := viper.GetString("spec"); fromConfig != "" {
		return fromConfig, nil
	}
	return "", fmt.Errorf("no provisioning spec given, use --spec or set PROMPROV_SPEC")
}

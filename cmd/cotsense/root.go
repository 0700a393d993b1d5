// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cotsense/cotsense/internal/config"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// NewRootCmd creates the root cotsense command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cotsense",
		Short:         "COTSense — semantic search for off-the-shelf electronic components",
		Long:          "COTSense finds commercial off-the-shelf electronic components matching a natural-language requirement, scored by specification match and availability.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("data-dir", "", "data directory holding the catalog and index")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Register subcommands
	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newExplainCmd(),
		newStatusCmd(),
		newImportCmd(),
		newReindexCmd(),
		newVersionCmd(),
		newDoctorCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return cotserr.Errorf(cotserr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// Auto-discover cotsense.yaml from standard locations.
		// Note: SetConfigType is intentionally omitted. When set, Viper
		// falls back to trying the bare config name without extension,
		// which collides with the ./cotsense binary in the project root.
		v.SetConfigName("cotsense")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cotsense")
		v.AddConfigPath("/etc/cotsense")
		// No config file is fine — defaults and env vars still apply.
		// Parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cotserr.Errorf(cotserr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
		}
	}

	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return cotserr.Errorf(cotserr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}
	if dataDir, _ := cmd.Root().PersistentFlags().GetString("data-dir"); dataDir != "" {
		v.Set("storage.path", dataDir)
	}

	return nil
}

// serverAddress returns the address flag value or the configured listen
// address.
func serverAddress(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("address"); addr != "" {
		return addr
	}
	return viper.GetString("server.listen")
}

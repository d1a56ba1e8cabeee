// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-gifportal
//
// go-gifportal is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-gifportal is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-gifportal.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/algorand/go-gifportal/config"
	"github.com/algorand/go-gifportal/libportal"
	"github.com/algorand/go-gifportal/logging"
)

// dataDirEnv names the environment variable consulted when --datadir is absent.
const dataDirEnv = "GIFPORTAL_DATA"

var dataDir string

var versionCheck bool

func init() {
	// init.go
	rootCmd.AddCommand(initCmd)

	// account.go
	rootCmd.AddCommand(accountCmd)

	// portal.go
	rootCmd.AddCommand(portalCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.Flags().BoolVarP(&versionCheck, "version", "v", false, "Display the current build version and exit")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "datadir", "d", "", "Data directory holding the ledger and wallet (default $"+dataDirEnv+")")
}

var rootCmd = &cobra.Command{
	Use:   "gifportal",
	Short: "CLI for a local GIF portal ledger",
	Long:  `gifportal creates portal accounts on a local development ledger and appends links to them. Every command operates on one data dir, created with 'gifportal init'.`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		if versionCheck {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return
		}
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "The current version of gifportal",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	commit := config.CommitHash
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("gifportal (commit #%s)", commit)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func validateNoPosArgsFn(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("this command does not take positional parameters: %v", args)
	}
	return nil
}

func ensureDataDir() string {
	dir := dataDir
	if dir == "" {
		dir = os.Getenv(dataDirEnv)
	}
	if dir == "" {
		reportErrorln(errorNoDataDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		reportErrorf(errorDataDirAbs, dir, err)
	}
	return abs
}

// openClient opens the data dir and points the base logger at its cyclic log
// file, tagged with a session id so interleaved invocations can be told apart.
func openClient(dir string) (*libportal.Client, func()) {
	cfg, err := config.LoadConfigFromDisk(dir)
	if err != nil && !os.IsNotExist(err) {
		reportErrorf(errorLoadConfig, dir, err)
	}

	log := logging.Base()
	var closer io.Closer
	if cfg.LogSizeLimit == 0 {
		log.SetOutput(os.Stderr)
	} else {
		w := logging.MakeCyclicFileWriter(filepath.Join(dir, cfg.LogFileName), filepath.Join(dir, cfg.LogArchiveName), cfg.LogSizeLimit)
		log.SetOutput(w)
		closer = w
	}
	log.SetLevel(logging.Level(cfg.BaseLoggerDebugLevel))
	log = log.With("session", uuid.NewString())

	client, err := libportal.MakeClient(dir, log)
	if err != nil {
		reportErrorf(errorOpenDataDir, dir, err)
	}
	return client, func() {
		if err := client.Close(); err != nil {
			log.Warnf("closing ledger: %v", err)
		}
		if closer != nil {
			closer.Close()
		}
	}
}

func reportInfof(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func reportErrorln(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func reportErrorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

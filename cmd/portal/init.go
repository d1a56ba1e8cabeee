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
	"github.com/spf13/cobra"

	"github.com/algorand/go-gifportal/libportal"
	"github.com/algorand/go-gifportal/protocol"
)

var (
	initNetwork       string
	initFaucetBalance uint64
)

func init() {
	initCmd.Flags().StringVar(&initNetwork, "network", string(protocol.DevNetwork), "Network name recorded in the genesis")
	initCmd.Flags().Uint64Var(&initFaucetBalance, "faucet-balance", libportal.DefaultFaucetBalance, "Genesis balance of the faucet account")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a data dir with a config, a genesis and a funded faucet key",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		dir := ensureDataDir()
		faucet, err := libportal.InitDataDir(dir, protocol.NetworkID(initNetwork), initFaucetBalance)
		if err != nil {
			reportErrorf(errorInitDataDir, dir, err)
		}
		reportInfof(cmd, infoInitDataDir, dir, faucet)
	},
}

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
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/libportal"
)

var fundFrom string

func init() {
	accountCmd.AddCommand(newAccountCmd)
	accountCmd.AddCommand(listAccountsCmd)
	accountCmd.AddCommand(balanceCmd)
	accountCmd.AddCommand(fundCmd)

	fundCmd.Flags().StringVarP(&fundFrom, "from", "f", libportal.FaucetKeyName, "Account to take the funds from")
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage wallet keys and their balances",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

var newAccountCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Generate a key and store it in the wallet under name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := ensureDataDir()
		wallet, err := libportal.OpenWallet(filepath.Join(dir, libportal.WalletFilename))
		if err != nil {
			reportErrorf(errorOpenDataDir, dir, err)
		}
		addr, err := wallet.GenerateKey(args[0])
		if err != nil {
			reportErrorf(errorCreateAccount, args[0], err)
		}
		reportInfof(cmd, infoCreatedAccount, args[0], addr)
	},
}

var listAccountsCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallet keys with their balances",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		client, done := openClient(ensureDataDir())
		defer done()

		keys := client.Wallet().Keys()
		if len(keys) == 0 {
			reportInfof(cmd, infoNoAccounts)
			return
		}
		for _, k := range keys {
			bal, err := client.Balance(k.Address)
			if err != nil {
				reportErrorf(errorLookupAccount, k.Name, err)
			}
			reportInfof(cmd, "%-12s %s %s", k.Name, k.Address, formatAmount(bal))
		}
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [name|address]",
	Short: "Show the balance of an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, done := openClient(ensureDataDir())
		defer done()

		addr := resolve(client, args[0])
		bal, err := client.Balance(addr)
		if err != nil {
			reportErrorf(errorLookupAccount, args[0], err)
		}
		reportInfof(cmd, "%s", formatAmount(bal))
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund [name|address] [amount]",
	Short: "Transfer lamports to an account, creating it if needed",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			reportErrorf(errorBadAmount, args[1], err)
		}

		client, done := openClient(ensureDataDir())
		defer done()

		from := resolve(client, fundFrom)
		to := resolve(client, args[0])
		txid, err := client.Fund(from, to, amount)
		if err != nil {
			reportErrorf(errorFund, args[0], err)
		}
		reportInfof(cmd, infoTxnCommitted, txid, client.Ledger().Latest())
	},
}

func resolve(client *libportal.Client, nameOrAddress string) basics.Address {
	addr, err := client.Wallet().Resolve(nameOrAddress)
	if err != nil {
		reportErrorf(errorNoSuchAccount, nameOrAddress, err)
	}
	return addr
}

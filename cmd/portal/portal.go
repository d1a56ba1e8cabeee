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
)

var (
	portalFrom string
	portalName string
	showJSON   bool
)

func init() {
	portalCmd.AddCommand(createPortalCmd)
	portalCmd.AddCommand(addEntryCmd)
	portalCmd.AddCommand(showPortalCmd)

	createPortalCmd.Flags().StringVarP(&portalFrom, "from", "f", libportal.FaucetKeyName, "Account paying for the portal")
	createPortalCmd.Flags().StringVarP(&portalName, "name", "n", "", "Wallet name to remember the portal under")
	addEntryCmd.Flags().StringVarP(&portalFrom, "from", "f", libportal.FaucetKeyName, "Account submitting the link")
	showPortalCmd.Flags().BoolVar(&showJSON, "json", false, "Print the portal record as JSON")
}

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Create portals, append links and show their contents",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

var createPortalCmd = &cobra.Command{
	Use:   "create",
	Short: "Reserve a new, empty portal account",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		client, done := openClient(ensureDataDir())
		defer done()

		payer := resolve(client, portalFrom)
		addr, txid, err := client.CreatePortal(payer, portalName)
		if err != nil {
			reportErrorf(errorCreatePortal, err)
		}
		reportInfof(cmd, infoCreatedPortal, addr)
		reportInfof(cmd, infoTxnCommitted, txid, client.Ledger().Latest())
	},
}

var addEntryCmd = &cobra.Command{
	Use:   "add [portal] [link]",
	Short: "Append a link to a portal",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, done := openClient(ensureDataDir())
		defer done()

		addr := resolve(client, args[0])
		user := resolve(client, portalFrom)
		txid, err := client.AddEntry(addr, user, args[1])
		if err != nil {
			reportErrorf(errorAddEntry, args[0], err)
		}
		reportInfof(cmd, infoTxnCommitted, txid, client.Ledger().Latest())
	},
}

var showPortalCmd = &cobra.Command{
	Use:   "show [portal]",
	Short: "Print the entries of a portal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, done := openClient(ensureDataDir())
		defer done()

		addr := resolve(client, args[0])
		p, err := client.FetchPortal(addr)
		if err != nil {
			reportErrorf(errorFetchPortal, args[0], err)
		}
		if showJSON {
			cmd.OutOrStdout().Write(portalJSON(addr, p))
			return
		}
		writePortal(cmd.OutOrStdout(), addr, p)
	},
}

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

const (
	// Data dir
	errorNoDataDir   = "Data directory not specified.  Please use -d or set $" + dataDirEnv + " in your environment. Exiting."
	errorDataDirAbs  = "Cannot resolve data directory %s: %v"
	errorLoadConfig  = "Cannot load config from %s: %v"
	errorOpenDataDir = "Cannot open data directory %s: %v"
	errorInitDataDir = "Cannot initialize data directory %s: %v"
	infoInitDataDir  = "Initialized %s, faucet account %s"

	// Accounts
	errorNoSuchAccount = "Unknown account %s: %v"
	errorCreateAccount = "Cannot create account %s: %v"
	errorLookupAccount = "Cannot look up account %s: %v"
	errorBadAmount     = "Invalid amount %q: %v"
	errorFund          = "Cannot fund %s: %v"
	infoCreatedAccount = "Created account %s: %s"
	infoNoAccounts     = "Wallet is empty. Create an account with 'gifportal account new'"
	infoTxnCommitted   = "Transaction %s committed in round %d"

	// Portal
	errorCreatePortal = "Cannot create portal: %v"
	errorAddEntry     = "Cannot add entry to %s: %v"
	errorFetchPortal  = "Cannot read portal %s: %v"
	infoCreatedPortal = "Created portal %s"
)

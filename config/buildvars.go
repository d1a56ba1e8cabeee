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

package config

/* Build time variables set through -ldflags */

// DefaultPortalProgramID is the base58 identity the portal program is deployed
// under when config.json does not name one. Deployments override it with
//
//	-ldflags "-X github.com/algorand/go-gifportal/config.DefaultPortalProgramID=<base58>"
var DefaultPortalProgramID = "2Ph9ShJ7wV3PwPdrFcFaJZm53t33CSBYkv3DEB56cdsq"

// CommitHash is the git commit id in effect when the build was created.
// It will be set by the build tools
var CommitHash string

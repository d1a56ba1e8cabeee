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
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/algorand/go-gifportal/data/basics"
	"github.com/algorand/go-gifportal/programs/portal"
	"github.com/algorand/go-gifportal/protocol"
)

var (
	indexColor     = color.New(color.Faint)
	linkColor      = color.New(color.FgCyan)
	submitterColor = color.New(color.FgYellow)
)

// unicodePrintable scans str for non-printable unicode characters. It reports
// whether str was printable, along with the printable characters it holds.
func unicodePrintable(str string) (isPrintable bool, printableString string) {
	isPrintable = true
	encRuneBuf := make([]byte, 8)
	for _, r := range str {
		if !unicode.IsPrint(r) {
			isPrintable = false
		} else {
			n := utf8.EncodeRune(encRuneBuf, r)
			printableString += string(encRuneBuf[:n])
		}
	}
	return
}

func formatAmount(a basics.Amount) string {
	return fmt.Sprintf("%d lamports", a.Raw)
}

// writePortal renders p as a numbered list. Links are printed as stored
// minus any non-printable runes, which would otherwise corrupt the terminal.
func writePortal(w io.Writer, addr basics.Address, p portal.PortalAccount) {
	fmt.Fprintf(w, "Portal %s: %d entries\n", addr, p.TotalCount)
	for i, e := range p.Entries {
		_, link := unicodePrintable(e.Link)
		fmt.Fprintf(w, "%s %s\n    submitted by %s\n",
			indexColor.Sprintf("%4d.", i+1), linkColor.Sprint(link), submitterColor.Sprint(e.Submitter))
	}
}

type entryView struct {
	_struct struct{} `codec:""`

	Link      string         `codec:"link"`
	Submitter basics.Address `codec:"submitter"`
}

type portalView struct {
	_struct struct{} `codec:""`

	Address    basics.Address `codec:"address"`
	TotalCount uint64         `codec:"total_count"`
	Entries    []entryView    `codec:"entries"`
}

func portalJSON(addr basics.Address, p portal.PortalAccount) []byte {
	view := portalView{Address: addr, TotalCount: p.TotalCount, Entries: make([]entryView, len(p.Entries))}
	for i, e := range p.Entries {
		view.Entries[i] = entryView{Link: e.Link, Submitter: e.Submitter}
	}
	return append(protocol.EncodeJSON(&view), '\n')
}

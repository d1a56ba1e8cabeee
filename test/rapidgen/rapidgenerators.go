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

package rapidgen

import (
	"fmt"

	"pgregory.net/rapid"
)

const (
	domainMaxLength        = 255
	domainMaxElementLength = 63
)

// Domain generates an RFC 1035 compliant domain name.
func Domain() *rapid.Generator[string] {
	return DomainOf(domainMaxLength, domainMaxElementLength)
}

// DomainOf generates an RFC 1035 compliant domain name of at most maxLength
// bytes, with labels of at most maxElementLength bytes.
func DomainOf(maxLength, maxElementLength int) *rapid.Generator[string] {
	assertf(4 <= maxLength, "maximum length (%v) should not be less than 4, to generate a two character domain and a one character subdomain", maxLength)
	assertf(maxLength <= domainMaxLength, "maximum length (%v) should not be greater than 255 to comply with RFC 1035", maxLength)
	assertf(2 <= maxElementLength, "maximum element length (%v) should not be less than 2", maxElementLength)
	assertf(maxElementLength <= domainMaxElementLength, "maximum element length (%v) should not be greater than 63 to comply with RFC 1035", maxElementLength)

	expr := fmt.Sprintf(`[a-z]([a-z0-9\-]{0,%d}[a-z0-9])?`, maxElementLength-2)
	return rapid.Custom(func(t *rapid.T) string {
		domain := tldGenerator.Draw(t, "tld")
		labels := rapid.IntRange(1, 4).Draw(t, "labels")
		for i := 0; i < labels; i++ {
			sub := rapid.StringMatching(expr).Draw(t, "subdomain")
			if len(domain)+len(sub)+1 > maxLength {
				break
			}
			domain = sub + "." + domain
		}
		return domain
	})
}

// Link generates an https URL to a gif, no longer than 63 bytes.
func Link() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		host := DomainOf(40, 20).Draw(t, "host")
		name := rapid.StringMatching(`[a-zA-Z0-9]{1,10}`).Draw(t, "name")
		return "https://" + host + "/" + name + ".gif"
	})
}

var tldGenerator = rapid.SampledFrom([]string{"com", "net", "org", "io", "gg", "dev", "me"})

func assertf(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(fmt.Sprintf(format, args...))
	}
}

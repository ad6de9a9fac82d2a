///////////////////////////////////////////////////////////////////////////////////////////////////
//                                                                                               //
//                                                                                               //
//         oooooo   oooooo     oooo           oooooo   oooooo     oooo         .o8               //
//          `888.    `888.     .8'             `888.    `888.     .8'         "888               //
//           `888.   .8888.   .8' oooo    ooo   `888.   .8888.   .8' .ooooo.   888oooo.          //
//            `888  .8'`888. .8'   `88.  .8'     `888  .8'`888. .8' d88' `88b  d88' `88b         //
//             `888.8'  `888.8'     `88..8'       `888.8'  `888.8'  888ooo888  888   888         //
//              `888'    `888'       `888'         `888'    `888'   888    .o  888   888         //
//               `8'      `8'         .8'           `8'      `8'    `Y8bod8P'  `Y8bod8P'         //
//                                .o..P'                                                         //
//                                `Y8P'                                                          //
//                                                                                               //
//                                                                                               //
//                              Copyright (C) 2024  Wyatt Sheffield                              //
//                                                                                               //
//                 This program is free software: you can redistribute it and/or                 //
//                 modify it under the terms of the GNU General Public License as                //
//                 published by the Free Software Foundation, either version 3 of                //
//                      the License, or (at your option) any later version.                      //
//                                                                                               //
//                This program is distributed in the hope that it will be useful,                //
//                 but WITHOUT ANY WARRANTY; without even the implied warranty of                //
//                 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the                 //
//                          GNU General Public License for more details.                         //
//                                                                                               //
//                   You should have received a copy of the GNU General Public                   //
//                         License along with this program.  If not, see                         //
//                                <https://www.gnu.org/licenses/>.                               //
//                                                                                               //
//                                                                                               //
///////////////////////////////////////////////////////////////////////////////////////////////////

package util

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// A bare relative path: no scheme, no authority, no whitespace.
var relativePathRegex = regexp.MustCompile(`^[\p{L}\p{N}_.~%@+!$'()*,;=:/?#&-]+$`)

var mrkdwnEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func Timer(name string) func() {
	start := time.Now()
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}
	return func() {
		fmt.Fprintf(os.Stderr, "%s:%d %s [%v]\n", filepath.Base(file), line, name, time.Since(start))
	}
}

// let B = {b ∈ sliceB | b ∉ sliceA} then sliceA ∪ B is equivalent to ConcatUnique(sliceA, sliceB)
func ConcatUnique[T comparable](sliceA []T, sliceB []T) []T {
	result := make([]T, len(sliceA))
	copy(result, sliceA)
	for _, val := range sliceB {
		if !slices.Contains(result, val) {
			result = append(result, val)
		}
	}
	return result
}

// IsValidURL accepts absolute http(s) URLs with a host, data: URLs and bare
// relative paths. Everything else is rejected.
func IsValidURL(raw string) bool {
	if raw == "" || strings.TrimSpace(raw) != raw {
		return false
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f || r == ' ' {
			return false
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "data":
		return len(u.Opaque) > 0
	case "":
		if u.Host != "" || strings.HasPrefix(raw, "//") {
			return false
		}
		return relativePathRegex.MatchString(raw)
	}
	return false
}

// ResolveURL resolves a relative reference against base. Absolute and data
// URLs are returned unchanged, as is everything when base is empty.
func ResolveURL(ref, base string) (string, error) {
	if base == "" || ref == "" {
		return ref, nil
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref, err
	}
	if refURL.IsAbs() || strings.HasPrefix(ref, "#") {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref, err
	}
	if !baseURL.IsAbs() {
		return ref, fmt.Errorf("base URL %s is not absolute", base)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// EscapeMrkdwn replaces the three characters the platform reserves for
// control sequences. Quotes are left alone.
func EscapeMrkdwn(s string) string {
	return mrkdwnEscaper.Replace(s)
}

// Truncate shortens s to at most limit characters, cutting only between
// grapheme clusters.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	var (
		count int
		end   int
	)
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		n := utf8.RuneCountInString(cluster)
		if count+n > limit {
			break
		}
		count += n
		end += len(cluster)
	}
	return s[:end]
}

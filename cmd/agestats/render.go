// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/xmidt-org/agestats"
)

// view selects which parts of the State get rendered.
type view int

const (
	viewAge view = 1 << iota
	viewStats
	viewMaxAge

	viewAll = viewAge | viewStats | viewMaxAge
)

// unset is shown for a value that was never fetched successfully.
const unset = "-"

func optional(v *string) string {
	if v == nil {
		return unset
	}

	return *v
}

// render writes the selected parts of state as aligned text.
func render(w io.Writer, v view, state agestats.State) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if v&viewAge != 0 {
		fmt.Fprintf(tw, "name:\t%s\n", state.Name)
		fmt.Fprintf(tw, "age:\t%s\n", optional(state.Age))
	}

	if v&viewMaxAge != 0 {
		fmt.Fprintf(tw, "max age:\t%s\n", optional(state.MaxAge))
	}

	if v&viewStats != 0 {
		if state.Stats == nil {
			fmt.Fprintf(tw, "stats:\t%s\n", unset)
		} else {
			fmt.Fprintf(tw, "stats:\t%d names\n", len(state.Stats))
			for _, s := range state.Stats {
				fmt.Fprintf(tw, "  %s\t%d\n", s.Name, s.Requests)
			}
		}
	}

	return tw.Flush()
}

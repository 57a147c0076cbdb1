package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const usageMain = `nocairip is the Nocai CMYK raster image processor.

Usage:

	nocairip <command> [arguments]

The commands are:
`

const usageRip = `rip -img image -inicc profile.icc -outicc profile.icc -cmask c.tif -mmask m.tif -ymask y.tif -kmask k.tif -out out.prn [-xdpi 600 -ydpi 600]

Runs the full pipeline on a single job: decodes the source image, applies
the ICC color transform, halftones and packs all four channels, and
writes the resulting PRN file.`

const usageConfig = `config [-dir path] [-force]

Writes a default config.yml if one doesn't already exist under the given
directory (defaults to the user config directory).`

const usageVersion = `version

Prints the nocairip version.`

// usageTable renders a two-column, width-aligned command summary, the
// way per-command usage tables get column-aligned elsewhere -- runewidth
// accounts for the fact that a rune's printed width isn't always 1.
func usageTable(cmds CommandMap, order []string) string {
	maxW := 0
	for _, name := range order {
		if w := runewidth.StringWidth(name); w > maxW {
			maxW = w
		}
	}

	var b strings.Builder
	b.WriteString(usageMain)
	for _, name := range order {
		cmd := cmds[name]
		pad := maxW - runewidth.StringWidth(name)
		fmt.Fprintf(&b, "\t%s%s  %s\n", name, strings.Repeat(" ", pad), firstLine(cmd.usageShort))
	}
	b.WriteString("\nUse \"nocairip help <command>\" for more information about a command.\n")
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

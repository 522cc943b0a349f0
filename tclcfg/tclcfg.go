// Package tclcfg converts Tcl list-style variable definitions into the
// flat cfg format consumed by the library-list tooling. Only
// `set <array>(<KEY>) [list ...]` blocks are converted; paths are
// assumed to contain no whitespace.
package tclcfg

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultSection     = "liblist"
	DefaultAuthor      = "sunnyy@alchip.com"
	DefaultNameWidth   = 12
	DefaultIndentWidth = 16
)

// Matches both the multi-line continuation form and the single-line
// form. The body is lazy, so nested brackets end the block early.
var reListBlock = regexp.MustCompile(`(?s)set\s+\w+\(([^)]+)\)\s+\[list(.*?)\]\s*;?`)

// Options controls the generated header and column layout. The zero
// value renders an empty section and author; use DefaultOptions for
// the conventional defaults.
type Options struct {
	Section     string `json:"section"`
	Author      string `json:"author"`
	Created     string `json:"created,omitempty"`
	NameWidth   int    `json:"name_width"`
	IndentWidth int    `json:"indent_width"`
}

// DefaultOptions returns the conventional layout. Created is left
// empty, which makes Convert stamp today's date.
func DefaultOptions() Options {
	return Options{
		Section:     DefaultSection,
		Author:      DefaultAuthor,
		NameWidth:   DefaultNameWidth,
		IndentWidth: DefaultIndentWidth,
	}
}

// Convert rewrites Tcl text as cfg text. Comment lines are dropped
// before matching, so a commented-out set block never converts and a
// comment inside a list does not break the block. Variables with no
// paths are elided. Output ends with a single newline.
func Convert(text string, opts Options) string {
	if opts.IndentWidth < 0 {
		opts.IndentWidth = 0
	}
	created := opts.Created
	if created == "" {
		created = time.Now().Format("2006-01-02")
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	cleaned := strings.Join(kept, "\n")

	out := []string{
		"[" + opts.Section + "]",
		"# Author: " + opts.Author,
		"# Created: " + created,
		"",
	}

	pad := strings.Repeat(" ", opts.IndentWidth)
	for _, m := range reListBlock.FindAllStringSubmatch(cleaned, -1) {
		key := strings.TrimSpace(m[1])
		paths := extractPaths(m[2])
		if len(paths) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%-*s = %s", opts.NameWidth, key, paths[0]))
		for _, p := range paths[1:] {
			out = append(out, pad+p)
		}
		out = append(out, "")
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

// extractPaths splits a list body into whitespace-free tokens. Line
// continuations are stripped before trailing semicolons, in that order.
func extractPaths(body string) []string {
	var paths []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, `\`) {
			line = strings.TrimSpace(line[:len(line)-1])
		}
		if strings.HasSuffix(line, ";") {
			line = strings.TrimSpace(line[:len(line)-1])
		}
		if line == "" {
			continue
		}
		paths = append(paths, strings.Fields(line)...)
	}
	return paths
}

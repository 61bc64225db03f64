// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package selection resolves the user's intent into a concrete ordered
// list of catalog fonts to act on.
package selection

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/profiles"
)

// ErrAmbiguousSelection is returned when more than one selection mode is given.
var ErrAmbiguousSelection = errors.New("choose only one of --fonts, --all or --profile")

// allToken selects the entire catalog, both as a flag and in the
// interactive prompt.
const allToken = "all"

// Options captures the mutually-exclusive selection modes. When none is
// set, the interactive numbered menu runs.
type Options struct {
	Fonts   []string
	All     bool
	Profile string
}

// Prompter reads one line of user input. Abstracted so the interactive
// path is testable without a terminal.
type Prompter interface {
	ReadLine() (string, error)
}

// StdinPrompter reads selections from standard input.
type StdinPrompter struct {
	reader *bufio.Reader
}

// NewStdinPrompter creates a prompter over os.Stdin.
func NewStdinPrompter() *StdinPrompter {
	return &StdinPrompter{reader: bufio.NewReader(os.Stdin)}
}

// ReadLine reads one input line.
func (p *StdinPrompter) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Resolve turns the selection options into an ordered list of font names,
// each validated against the catalog. Profile fonts are cross-checked
// against the live catalog too, so stale profile entries fail fast here
// instead of as a download error deep inside the installer.
func Resolve(cat *domain.Catalog, reg *profiles.Registry, opts Options, prompter Prompter) ([]string, error) {
	if err := checkExclusive(opts); err != nil {
		return nil, err
	}

	switch {
	case opts.All:
		fonts := make([]string, len(cat.Fonts))
		copy(fonts, cat.Fonts)

		return fonts, nil
	case len(opts.Fonts) > 0:
		return resolveExplicit(cat, opts.Fonts)
	case opts.Profile != "":
		return resolveProfile(cat, reg, opts.Profile)
	default:
		return resolveInteractive(cat, prompter)
	}
}

func checkExclusive(opts Options) error {
	modes := 0
	if opts.All {
		modes++
	}

	if len(opts.Fonts) > 0 {
		modes++
	}

	if opts.Profile != "" {
		modes++
	}

	if modes > 1 {
		return ErrAmbiguousSelection
	}

	return nil
}

func resolveExplicit(cat *domain.Catalog, requested []string) ([]string, error) {
	fonts := make([]string, 0, len(requested))

	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if !cat.Has(name) {
			return nil, fmt.Errorf("%w: unknown font %q", domain.ErrInvalidSelection, name)
		}

		fonts = append(fonts, name)
	}

	if len(fonts) == 0 {
		return nil, fmt.Errorf("%w: no fonts named", domain.ErrInvalidSelection)
	}

	return fonts, nil
}

func resolveProfile(cat *domain.Catalog, reg *profiles.Registry, profile string) ([]string, error) {
	fonts, ok := reg.Get(profile)
	if !ok {
		return nil, fmt.Errorf("%w: unknown profile %q", domain.ErrInvalidSelection, profile)
	}

	for _, name := range fonts {
		if !cat.Has(name) {
			return nil, fmt.Errorf("%w: profile %q lists %q which is not in release %s", domain.ErrInvalidSelection, profile, name, cat.Tag)
		}
	}

	out := make([]string, len(fonts))
	copy(out, fonts)

	return out, nil
}

// resolveInteractive shows the numbered catalog menu and re-prompts until
// the input parses. Indices are 1-based; 0 and out-of-range values are
// rejected, never clamped.
func resolveInteractive(cat *domain.Catalog, prompter Prompter) ([]string, error) {
	if prompter == nil {
		prompter = NewStdinPrompter()
	}

	fmt.Fprint(os.Stderr, renderMenu(cat))

	for {
		fmt.Fprintf(os.Stderr, "Fonts to install (space-separated numbers, or %q): ", allToken)

		line, err := prompter.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSelection, err)
		}

		fonts, err := parseSelection(cat, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)

			continue
		}

		return fonts, nil
	}
}

func parseSelection(cat *domain.Catalog, line string) ([]string, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty selection", domain.ErrInvalidSelection)
	}

	if len(tokens) == 1 && strings.EqualFold(tokens[0], allToken) {
		fonts := make([]string, len(cat.Fonts))
		copy(fonts, cat.Fonts)

		return fonts, nil
	}

	fonts := make([]string, 0, len(tokens))

	for _, token := range tokens {
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidSelection, token)
		}

		if index < 1 || index > len(cat.Fonts) {
			return nil, fmt.Errorf("%w: index %d out of range 1-%d", domain.ErrInvalidSelection, index, len(cat.Fonts))
		}

		fonts = append(fonts, cat.Fonts[index-1])
	}

	return fonts, nil
}

// renderMenu formats the numbered catalog menu in aligned columns.
func renderMenu(cat *domain.Catalog) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render(fmt.Sprintf("◈ Nerd Fonts %s ◈", cat.Tag))

	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n")

	widest := 0
	for _, font := range cat.Fonts {
		if w := runewidth.StringWidth(font); w > widest {
			widest = w
		}
	}

	const columns = 3

	for i, font := range cat.Fonts {
		b.WriteString(fmt.Sprintf("%3d) %s", i+1, runewidth.FillRight(font, widest)))

		if (i+1)%columns == 0 || i == len(cat.Fonts)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}

	return b.String()
}

// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package preview renders sample images for installed fonts through the
// external ImageMagick tool.
package preview

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
)

// DefaultText exercises the glyphs most affected by patched fonts.
const DefaultText = "The quick brown fox 0O 1lI {}[]() -> => != >="

// renderTools are the ImageMagick entry points, newest first.
var renderTools = []string{"magick", "convert"}

// Generator renders preview images into the cache previews directory.
type Generator struct {
	runner      domain.CommandRunner
	log         *logging.Logger
	previewsDir string
	text        string
}

// NewGenerator creates a Generator. An empty text selects DefaultText.
func NewGenerator(runner domain.CommandRunner, log *logging.Logger, cacheDir, text string) *Generator {
	if text == "" {
		text = DefaultText
	}

	return &Generator{
		runner:      runner,
		log:         log,
		previewsDir: filepath.Join(cacheDir, "previews"),
		text:        text,
	}
}

// Generate renders a preview image for the named font and returns the
// image path.
func (g *Generator) Generate(ctx context.Context, font string) (string, error) {
	tool := ""

	for _, candidate := range renderTools {
		if g.runner.CommandExists(candidate) {
			tool = candidate

			break
		}
	}

	if tool == "" {
		return "", fmt.Errorf("%w: imagemagick (%s)", domain.ErrMissingDependency, platform.DependencyHint("magick"))
	}

	if err := platform.EnsureDir(g.previewsDir); err != nil {
		return "", fmt.Errorf("failed to create previews directory: %w", err)
	}

	outPath := filepath.Join(g.previewsDir, font+".png")

	err := g.runner.Execute(ctx, tool,
		"-size", "800x200",
		"-background", "white",
		"-fill", "black",
		"-font", font+" Nerd Font",
		"-pointsize", "28",
		"-gravity", "center",
		"label:"+g.text,
		outPath,
	)
	if err != nil {
		return "", fmt.Errorf("failed to render preview for %s: %w", font, err)
	}

	g.log.Infof("Generated preview for %s at %s", font, outPath)

	return outPath, nil
}

// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package installer

import (
	"context"
	"sync"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
)

// Dispatch fans run out over the font list with at most parallel
// invocations in flight. Completion is unordered and failures are
// independent; workers share nothing but the read-only inputs.
func Dispatch(ctx context.Context, fonts []string, parallel int, run func(context.Context, string) domain.InstallResult) []domain.InstallResult {
	if parallel < 1 {
		parallel = 1
	}

	if parallel > len(fonts) {
		parallel = len(fonts)
	}

	jobs := make(chan string)
	results := make(chan domain.InstallResult)

	var wg sync.WaitGroup

	for range parallel {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for font := range jobs {
				results <- run(ctx, font)
			}
		}()
	}

	go func() {
		defer close(jobs)

		for _, font := range fonts {
			select {
			case jobs <- font:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]domain.InstallResult, 0, len(fonts))
	for result := range results {
		collected = append(collected, result)
	}

	return collected
}

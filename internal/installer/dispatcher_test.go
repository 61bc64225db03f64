// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

package installer

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
)

func TestDispatch_OneResultPerFont(t *testing.T) {
	t.Parallel()

	fonts := []string{"CascadiaCode", "FiraCode", "Hack", "JetBrainsMono", "Meslo"}

	results := Dispatch(context.Background(), fonts, 2, func(_ context.Context, font string) domain.InstallResult {
		return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
	})

	require.Len(t, results, len(fonts))

	got := make([]string, 0, len(results))
	for _, result := range results {
		got = append(got, result.Font)
	}

	sort.Strings(got)
	assert.Equal(t, fonts, got)
}

func TestDispatch_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const parallel = 3

	var inFlight, peak atomic.Int64

	var mu sync.Mutex

	fonts := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	Dispatch(context.Background(), fonts, parallel, func(_ context.Context, font string) domain.InstallResult {
		current := inFlight.Add(1)

		mu.Lock()
		if current > peak.Load() {
			peak.Store(current)
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)

		return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
	})

	assert.LessOrEqual(t, peak.Load(), int64(parallel))
	assert.Greater(t, peak.Load(), int64(0))
}

func TestDispatch_FailuresAreIndependent(t *testing.T) {
	t.Parallel()

	fonts := []string{"good", "bad", "good2"}

	results := Dispatch(context.Background(), fonts, 2, func(_ context.Context, font string) domain.InstallResult {
		if font == "bad" {
			return domain.InstallResult{Font: font, Status: domain.StatusFailed, Err: errors.New("boom")}
		}

		return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
	})

	require.Len(t, results, len(fonts))

	statuses := map[string]domain.InstallStatus{}
	for _, result := range results {
		statuses[result.Font] = result.Status
	}

	assert.Equal(t, domain.StatusFailed, statuses["bad"])
	assert.Equal(t, domain.StatusSuccess, statuses["good"])
	assert.Equal(t, domain.StatusSuccess, statuses["good2"])
}

func TestDispatch_ParallelBelowOneRunsSequentially(t *testing.T) {
	t.Parallel()

	results := Dispatch(context.Background(), []string{"a", "b"}, 0, func(_ context.Context, font string) domain.InstallResult {
		return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
	})

	assert.Len(t, results, 2)
}

func TestDispatch_EmptyFontList(t *testing.T) {
	t.Parallel()

	results := Dispatch(context.Background(), nil, 4, func(_ context.Context, font string) domain.InstallResult {
		return domain.InstallResult{Font: font, Status: domain.StatusSuccess}
	})

	assert.Empty(t, results)
}

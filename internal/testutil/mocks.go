// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides shared mocks for the domain ports.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dahromy/nerd-fonts-manager/internal/domain"
)

// MockCommandRunner mocks the CommandRunner port for testing.
type MockCommandRunner struct {
	mock.Mock
}

// Execute mocks command execution.
func (m *MockCommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	callArgs := make([]any, 0, len(args)+2)
	callArgs = append(callArgs, ctx, name)

	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	return m.Called(callArgs...).Error(0)
}

// CommandExists mocks command availability checks.
func (m *MockCommandRunner) CommandExists(name string) bool {
	return m.Called(name).Bool(0)
}

// MockNetworkClient mocks the NetworkClient port for testing.
type MockNetworkClient struct {
	mock.Mock
}

// DownloadFile mocks an archive download.
func (m *MockNetworkClient) DownloadFile(ctx context.Context, url, destPath string) error {
	return m.Called(ctx, url, destPath).Error(0)
}

// MockCatalogClient mocks the CatalogClient port for testing.
type MockCatalogClient struct {
	mock.Mock
}

// Resolve mocks catalog resolution.
func (m *MockCatalogClient) Resolve(ctx context.Context) (*domain.Catalog, error) {
	args := m.Called(ctx)
	if result := args.Get(0); result != nil {
		cat, ok := result.(*domain.Catalog)
		if !ok {
			return nil, args.Error(1)
		}

		return cat, args.Error(1)
	}

	return nil, args.Error(1)
}

// DownloadURL mocks archive URL construction.
func (m *MockCatalogClient) DownloadURL(tag, font string) string {
	return m.Called(tag, font).String(0)
}

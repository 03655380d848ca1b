// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail fast on
// setup errors: environment variables (MustSetenv, MustUnsetenv), directories
// (MustMkdirAll) and project fixtures (WriteProject).
package testutil

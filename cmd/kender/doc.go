// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the kender CLI.
//
// The root command and `run` execute every unit that applies to the project,
// `list` shows how each unit resolves, `config` inspects and creates
// configuration files, and `watch` re-runs units when project files change.
package cmd

// SPDX-License-Identifier: MPL-2.0

// Package config handles kender configuration using Viper with CUE or TOML files.
//
// Configuration is layered: defaults, then the user file in the platform config
// directory (~/.config/kender on Linux), then the project file (.kender.cue or
// .kender.toml in the project root), then KENDER_* environment variables. An
// explicit --config path replaces both file layers.
//
// Both file formats are validated against the embedded #Config CUE schema.
package config

// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and rendered help pages.
//
// ActionableError carries an operation, the resource involved, remediation
// suggestions and optionally the Id of a Markdown help page, which the CLI
// renders with glamour when running verbosely.
package issue

// SPDX-License-Identifier: MPL-2.0

// Package command defines the units kender can run against a project.
//
// A unit answers two questions: whether it applies to the current project
// (Available) and which shell invocation it would run (Command). Units hold no
// state of their own; every call re-reads the environment and dependency
// oracles they were constructed with. The Registry enumerates units and is the
// only place that enforces availability before resolution.
package command

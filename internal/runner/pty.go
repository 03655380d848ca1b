// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"

	"github.com/creack/pty"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// exitNotFound is the shell's status for a missing program.
const exitNotFound = 127

// ptyExecHandler runs external programs on a pseudo-terminal so test
// runners keep their colored, progress-style output. The terminal's output
// is copied to the interpreter's stdout; stdin is not forwarded.
func (r *Runner) ptyExecHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)

		path, err := interp.LookPathDir(hc.Dir, hc.Env, args[0])
		if err != nil {
			fmt.Fprintln(hc.Stderr, err)
			return interp.ExitStatus(exitNotFound)
		}

		cmd := exec.CommandContext(ctx, path, args[1:]...)
		cmd.Dir = hc.Dir
		cmd.Env = execEnv(hc.Env)

		tty, err := pty.Start(cmd)
		if err != nil {
			if errors.Is(err, pty.ErrUnsupported) {
				r.logger.Debug("pseudo-terminal unsupported, running without one", "program", args[0])
				return next(ctx, args)
			}
			return fmt.Errorf("failed to start %s on a pseudo-terminal: %w", args[0], err)
		}
		defer tty.Close()

		// Reading the master returns EIO once the child exits on Linux.
		_, _ = io.Copy(hc.Stdout, tty)

		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return interp.ExitStatus(uint8(exitErr.ExitCode()))
			}
			return err
		}
		return nil
	}
}

// execEnv lists the exported variables of the interpreter's environment,
// including assignments made in the command line itself.
func execEnv(env expand.Environ) []string {
	var list []string
	for name, vr := range env.Each {
		if !vr.IsSet() {
			// Unset in the interpreter but inherited from the parent scope.
			list = slices.DeleteFunc(list, func(kv string) bool {
				return strings.HasPrefix(kv, name+"=")
			})
			continue
		}
		if vr.Exported && vr.Kind == expand.String {
			list = append(list, name+"="+vr.String())
		}
	}
	return list
}

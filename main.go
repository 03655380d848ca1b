// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/esjee/kender/cmd/kender"

func main() {
	cmd.Execute()
}

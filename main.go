// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Stary2001/godot-forwarder/cmd/forwarder"

func main() {
	cmd.Execute()
}

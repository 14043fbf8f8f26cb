//go:build !windows

package main

import "syscall"

// cmdSysProcAttr isolates each external process into its own process
// group so a hung child's signals don't cascade back into the shell's
// own group (spec §5: "Signals are delivered to the foreground process
// by the host OS; the shell does not install custom handlers").
var cmdSysProcAttr = &syscall.SysProcAttr{
	Setpgid: true,
}

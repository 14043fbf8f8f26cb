//go:build windows

package main

import "syscall"

var cmdSysProcAttr = &syscall.SysProcAttr{}

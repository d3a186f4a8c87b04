//go:build unix

package dispatch

import "syscall"

// detachedAttr starts the child in a new session so it neither shares the
// spawner's controlling terminal nor receives its job-control signals.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

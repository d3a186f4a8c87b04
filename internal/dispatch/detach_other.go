//go:build !unix

package dispatch

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}

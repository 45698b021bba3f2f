// +build darwin dragonfly freebsd netbsd openbsd

package main

import "golang.org/x/sys/unix"

// isTerminal reports whether fd refers to a terminal, by way of the same
// ioctl glibc's isatty uses.
func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	return err == nil
}

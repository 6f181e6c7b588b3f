//go:build linux || darwin || freebsd || openbsd || netbsd

package main

import (
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// enableCbreak turns off line buffering and echo but keeps output
// processing, so log lines written meanwhile still end with a newline.
// The returned func restores the previous state and is safe to call twice.
func enableCbreak(fd int) (func(), error) {
	saved, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}

	tio, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	tio.Lflag &^= unix.ICANON | unix.ECHO
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, tio); err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { term.Restore(fd, saved) })
	}, nil
}

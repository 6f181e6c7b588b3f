//go:build !(linux || darwin || freebsd || openbsd || netbsd)

package main

import (
	"sync"

	"golang.org/x/term"
)

// enableCbreak falls back to raw mode where termios is unavailable
func enableCbreak(fd int) (func(), error) {
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { term.Restore(fd, saved) })
	}, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode"

	"golang.org/x/term"

	"github.com/abrezinsky/archeryscore/internal/browser"
	"github.com/abrezinsky/archeryscore/internal/logger"
)

// keyActions carries what the shortcuts act on
type keyActions struct {
	out          io.Writer
	log          logger.Logger
	quit         func()
	open         func(url string) error
	standingsURL string
}

// nextLevel cycles debug -> info -> warn -> error -> debug
func nextLevel(current slog.Level) slog.Level {
	switch current {
	case slog.LevelDebug:
		return slog.LevelInfo
	case slog.LevelInfo:
		return slog.LevelWarn
	case slog.LevelWarn:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// handleKey performs the action bound to key and reports whether the
// listener should stop
func (k *keyActions) handleKey(key byte) bool {
	switch unicode.ToLower(rune(key)) {
	case 's':
		fmt.Fprintf(k.out, "%sOpening live standings in browser...%s\r\n", cyan, reset)
		if err := k.open(k.standingsURL); err != nil {
			fmt.Fprintf(k.out, "%sError opening browser: %v%s\r\n", red, err, reset)
		}
	case 'h':
		if k.log.IsHTTPLoggingEnabled() {
			k.log.DisableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging disabled%s\r\n", yellow, reset)
		} else {
			k.log.EnableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging enabled%s\r\n", green, reset)
		}
	case 'l':
		level := nextLevel(k.log.GetLevel())
		k.log.SetLevel(level)
		fmt.Fprintf(k.out, "%sLog level: %s%s%s\r\n", green, yellow, level, reset)
	case '?':
		printKeyboardHelp()
	case 'q', '\x03': // q or Ctrl+C
		fmt.Fprintf(k.out, "%sShutting down server...%s\r\n", yellow, reset)
		k.quit()
		return true
	}
	return false
}

// readKeys feeds every byte of in to k until a quit key, EOF or ctx ends
func (k *keyActions) readKeys(ctx context.Context, in io.Reader) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		if n == 1 && k.handleKey(buf[0]) {
			return
		}
	}
}

// listenForKeyboard reads single key presses from the terminal. It does
// nothing when stdin is not a terminal (service managers, pipes).
func listenForKeyboard(ctx context.Context, quit func(), standingsURL string, appLog logger.Logger) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		appLog.Debug("Stdin is not a terminal, keyboard shortcuts disabled")
		return
	}

	restore, err := enableCbreak(fd)
	if err != nil {
		appLog.Warn("Keyboard shortcuts unavailable", "error", err)
		return
	}
	go func() {
		<-ctx.Done()
		restore()
	}()

	k := &keyActions{
		out:          os.Stdout,
		log:          appLog,
		quit:         quit,
		open:         browser.Open,
		standingsURL: standingsURL,
	}
	k.readKeys(ctx, os.Stdin)
	restore()
}

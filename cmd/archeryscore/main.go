package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abrezinsky/archeryscore/internal/app"
	"github.com/abrezinsky/archeryscore/internal/auth"
	"github.com/abrezinsky/archeryscore/internal/config"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/web"
)

// ANSI escape codes
const (
	clearLine = "\033[2K"
	moveUp    = "\033[%dA"
	reset     = "\033[0m"
	yellow    = "\033[33m"
	red       = "\033[31m"
	green     = "\033[32m"
	cyan      = "\033[36m"
	bold      = "\033[1m"
)

var (
	version = "dev"
)

// showBanner prints the logo and, unless skipped, an arrow flying into the
// target
func showBanner(skipAnimation bool) {
	const width = 62
	border := strings.Repeat("═", width)

	logo := []string{
		"      _             _                                   ",
		"     / \\   _ __ ___| |__   ___ _ __ _   _               ",
		"    / _ \\ | '__/ __| '_ \\ / _ \\ '__| | | |  Score       ",
		"   / ___ \\| | | (__| | | |  __/ |  | |_| |              ",
		"  /_/   \\_\\_|  \\___|_| |_|\\___|_|   \\__, |              ",
		"                                    |___/               ",
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		fmt.Printf("  %s║%s%-62s%s║%s\n", cyan, yellow, line, cyan, reset)
	}

	if skipAnimation {
		fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)
		return
	}

	fmt.Printf("  %s╠%s╣%s\n", cyan, border, reset)

	const (
		arrow  = ">>---->"
		target = "(@)"
	)
	flight := width - len(target) - len(arrow) - 2
	for pos := 0; pos <= flight; pos += 4 {
		if pos > 0 {
			fmt.Printf(moveUp, 2)
		}
		gap := flight - pos
		fmt.Printf("%s  %s║%s%s%s%s%s%s %s║%s\n", clearLine, cyan,
			strings.Repeat(" ", pos), yellow, arrow, reset, strings.Repeat(" ", gap+1), red+target, cyan, reset)
		fmt.Printf("%s  %s╚%s╝%s\n", clearLine, cyan, border, reset)
		time.Sleep(60 * time.Millisecond)
	}

	fmt.Printf(moveUp, 2)
	hit := fmt.Sprintf("%*s", width-1, "20 points! ")
	fmt.Printf("%s  %s║%s%s%s║%s\n", clearLine, cyan, green, hit+" ", cyan, reset)
	fmt.Printf("%s  %s╚%s╝%s\n\n", clearLine, cyan, border, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %ss%s      - Open live standings in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func usage() {
	fmt.Fprintf(os.Stderr, `ArcheryScore - live standings for field archery competitions

Usage:
  archeryscore [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Configuration is read from defaults, then the YAML file named by %s
(or -config), then %s* environment variables, then the flags above.

Keyboard Shortcuts (when enabled):
  s              Open live standings in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  archeryscore                               # Run on :8000 with archery.db
  archeryscore -addr :8080 -db /data/cup.db  # Custom port and database
  archeryscore -adminpw secret123            # Require a login for changes
  archeryscore -genpw                        # Generate an admin password
  archeryscore -target 24                    # 24 arrows per score card

`, config.FileEnv, config.EnvPrefix)
}

// generatePassword fills in a random admin password when asked to and none is
// configured. It reports whether it did.
func generatePassword(cfg *config.Config, requested bool) bool {
	if !requested || cfg.AdminPassword != "" {
		return false
	}
	cfg.AdminPassword = auth.GeneratePassword()
	return true
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file (overrides "+config.FileEnv+")")
	addr := flag.String("addr", ":8000", "HTTP listen address")
	dbPath := flag.String("db", "archery.db", "SQLite database path")
	uploadDir := flag.String("uploads", "uploaded_logos", "Directory for competition logos")
	adminPw := flag.String("adminpw", "", "Admin password (API is open when empty)")
	genPw := flag.Bool("genpw", false, "Generate an admin password when none is configured")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("logformat", "text", "Log format (text, json)")
	target := flag.Int("target", 28, "Arrows on a complete score card")
	baseURL := flag.String("baseurl", "", "Public base URL used in QR codes")
	frontends := flag.String("frontends", "", "Comma-separated frontend origins allowed by CORS")
	noAnimate := flag.Bool("noanimate", false, "Show logo only, skip the animation")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("archeryscore %s\n", version)
		return 0
	}

	if *configPath != "" {
		os.Setenv(config.FileEnv, *configPath)
	}

	// Only flags given on the command line override file and environment
	overrides := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			overrides["addr"] = *addr
		case "db":
			overrides["db_path"] = *dbPath
		case "uploads":
			overrides["upload_dir"] = *uploadDir
		case "adminpw":
			overrides["admin_password"] = *adminPw
		case "loglevel":
			overrides["log_level"] = *logLevel
		case "logformat":
			overrides["log_format"] = *logFormat
		case "target":
			overrides["target_arrows"] = *target
		case "baseurl":
			overrides["base_url"] = *baseURL
		case "frontends":
			overrides["frontend_urls"] = config.SplitList(*frontends)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sConfiguration error: %v%s\n", red, err, reset)
		return 2
	}

	generated := generatePassword(cfg, *genPw)

	appLog := logger.NewWithOptions(logger.Options{
		Writer: os.Stderr,
		Level:  logger.ParseLevel(cfg.LogLevel),
		JSON:   cfg.LogFormat == "json",
	})

	if cfg.LogFormat != "json" {
		showBanner(*noAnimate)
	}

	a, err := app.New(cfg, appLog, web.GetStaticFS())
	if err != nil {
		appLog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer a.Close()

	if generated {
		appLog.Info("Generated admin password", "password", cfg.AdminPassword)
	} else if *genPw {
		appLog.Info("Admin password already configured, not generating one")
	}

	if !*noKeyboard && cfg.LogFormat != "json" {
		printKeyboardHelp()
		go listenForKeyboard(ctx, stop, a.BaseURL()+"/", appLog)
	}

	if err := a.Run(ctx); err != nil {
		appLog.Error("Server error", "error", err)
		return 1
	}
	appLog.Info("Server stopped")
	return 0
}

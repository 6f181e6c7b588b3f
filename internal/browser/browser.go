package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Commander is an interface for executing commands (for testing)
type Commander interface {
	Start(name string, args ...string) error
}

// RealCommander executes actual commands
type RealCommander struct{}

// Start executes a command and starts it
func (RealCommander) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return cmd.Start()
}

// Opener launches the desktop browser, used to show the live standings from
// the scoring laptop
type Opener struct {
	cmd  Commander
	goos string
}

// New returns an Opener for the running platform
func New() *Opener {
	return &Opener{cmd: RealCommander{}, goos: runtime.GOOS}
}

// NewWithCommander returns an Opener using cmd as if running on goos
func NewWithCommander(cmd Commander, goos string) *Opener {
	return &Opener{cmd: cmd, goos: goos}
}

// Open opens rawURL in the default browser. Only http and https URLs are
// accepted since the address is handed to a shell helper.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: scheme must be http or https", rawURL)
	}

	name, args, err := command(o.goos, u.String())
	if err != nil {
		return err
	}
	return o.cmd.Start(name, args...)
}

// Open opens the URL with the platform default Opener
func Open(rawURL string) error {
	return New().Open(rawURL)
}

func command(goos, target string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "darwin": // macOS
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

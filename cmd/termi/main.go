// termi queries the terminal it runs in for optional features.
//
//	termi [-timeout duration] [-v|-vv] [query] keyboard-enhancement
//	termi [-timeout duration] [-v|-vv] [query] desktop-notifications
//	termi -version
//
// The exit status is 0 when the feature is supported, 1 when the terminal
// doesn't support it and 2 on errors, including the terminal not answering
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"git.sr.ht/~rockorager/termi"
	"git.sr.ht/~rockorager/termi/log"
)

const (
	exitSupported = iota
	exitUnsupported
	exitError
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [query] <keyboard-enhancement|desktop-notifications>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var (
		timeout time.Duration
		verbose     bool
		trace       bool
		showVersion bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "how long to wait for the terminal (default 2s, or $TERMI_TIMEOUT)")
	flag.BoolVar(&verbose, "v", false, "log debug messages")
	flag.BoolVar(&trace, "vv", false, "log everything read from the terminal")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Println("termi", version())
		os.Exit(exitSupported)
	}

	level := log.LevelWarn
	if s := os.Getenv("TERMI_LOG"); s != "" {
		l, err := log.ParseLevel(s)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitError)
		}
		level = l
	}
	switch {
	case trace:
		level = log.LevelTrace
	case verbose:
		level = log.LevelDebug
	}
	log.SetLevel(level)
	log.SetHandler(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      log.SlogLevel(level),
		TimeFormat: "15:04:05.000",
	}))

	args := flag.Args()
	if len(args) == 2 && args[0] == "query" {
		args = args[1:]
	}
	if len(args) != 1 {
		usage()
		os.Exit(exitError)
	}
	opts := termi.Options{Timeout: timeout}

	var (
		ok  bool
		err error
	)
	switch args[0] {
	case "keyboard-enhancement", "kb":
		ok, err = keyboardEnhancement(opts)
	case "desktop-notifications", "notifications":
		ok, err = desktopNotifications(opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown query %q\n", args[0])
		usage()
		os.Exit(exitError)
	}
	switch {
	case errors.Is(err, termi.ErrTimeout):
		log.Error("%v", err)
		fmt.Println("unknown: the terminal did not answer")
		os.Exit(exitError)
	case err != nil:
		log.Error("%v", err)
		os.Exit(exitError)
	case !ok:
		fmt.Println("not supported")
		os.Exit(exitUnsupported)
	}
	os.Exit(exitSupported)
}

func keyboardEnhancement(opts termi.Options) (bool, error) {
	flags, ok, err := termi.QueryKeyboardEnhancement(opts)
	if err != nil || !ok {
		return ok, err
	}
	fmt.Printf("supported: %s (%d)\n", flags, flags)
	return true, nil
}

func desktopNotifications(opts termi.Options) (bool, error) {
	support, ok, err := termi.QueryDesktopNotifications(opts)
	if err != nil || !ok {
		return ok, err
	}
	fmt.Printf("supported: %s\n", support.Identifier)
	keys := maps.Keys(support.Options)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("  %s=%s\n", k, strings.Join(support.Options[k], ","))
	}
	return true, nil
}

// version reports the module version the binary was built from
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}

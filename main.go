// Command dummyserial is an interactive harness around the mock serial
// ports described by a fixture file. It is mainly a debugging aid: type
// a payload, see what a test suite talking to the same fixture would
// read back.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dummyserial/config"
	"dummyserial/fixture"
	"dummyserial/profile"

	// Import profile packages for side-effect registration
	_ "dummyserial/profile/meter"
	_ "dummyserial/profile/modem"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to fixture file (required)")
	validate := flag.Bool("validate", false, "Validate fixture and exit")
	listProfiles := flag.Bool("list-profiles", false, "List registered device profiles and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Display version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dummyserial - mock serial port harness\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -config fixture.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config fixture.json -validate\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -list-profiles\n", os.Args[0])
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("dummyserial version %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// Handle list-profiles flag
	if *listProfiles {
		fmt.Println("Registered device profiles:")
		names := profile.List()
		if len(names) == 0 {
			fmt.Println("  (none registered)")
		} else {
			profile.ForEach(func(name string, p profile.Profile) {
				fmt.Printf("  %-10s - %s\n", name, p.Description())
			})
		}
		os.Exit(0)
	}

	// Require config path for main operation
	if *configPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -config flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load fixture
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fixture: %v\n", err)
		os.Exit(1)
	}

	// Validate fixture
	if err := config.Validate(cfg, profile.List()); err != nil {
		fmt.Fprintf(os.Stderr, "Fixture validation failed:\n  %v\n", err)
		os.Exit(1)
	}

	// Handle validate flag
	if *validate {
		fmt.Println("Fixture is valid")
		fmt.Printf("  Instance: %s\n", cfg.App.InstanceID)
		fmt.Printf("  Ports configured: %d\n", len(cfg.Ports))
		for i, port := range cfg.Ports {
			if port.Enabled {
				fmt.Printf("    [%d] %s - profile %q, %d inline responses, %d baud\n",
					i, port.Device, port.Profile, len(port.Responses), port.BaudRate)
			}
		}
		os.Exit(0)
	}

	// Setup logging
	logger := setupLogging(cfg, *debug)
	slog.SetDefault(logger)

	logger.Info("dummyserial starting",
		"version", version,
		"instance", cfg.App.InstanceID,
		"ports", len(cfg.Ports),
	)

	// Build the mock ports
	manager := fixture.NewManager(cfg, logger)
	if err := manager.Build(); err != nil {
		logger.Error("Failed to build fixture", "error", err)
		os.Exit(1)
	}
	defer manager.CloseAll()

	console(manager, os.Stdin, os.Stdout)
}

// console runs the interactive loop: every input line is written to
// the current port (CRLF-terminated) and the staged response printed
func console(manager *fixture.Manager, in *os.File, out *os.File) {
	devices := manager.Devices()
	current := devices[0]

	fmt.Fprintf(out, "Mock ports: %s\n", strings.Join(devices, ", "))
	fmt.Fprintf(out, "Talking to %s. Commands: .port <device>, .stats, .quit\n", current)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", current)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch {
		case line == ".quit":
			return
		case line == ".stats":
			for device, stats := range manager.Stats() {
				fmt.Fprintf(out, "  %s: %d writes (%d bytes), %d reads (%d bytes), %d errors\n",
					device, stats.Writes, stats.BytesWritten, stats.Reads, stats.BytesRead, stats.Errors)
			}
			continue
		case strings.HasPrefix(line, ".port "):
			device := strings.TrimSpace(strings.TrimPrefix(line, ".port "))
			if _, ok := manager.Port(device); !ok {
				fmt.Fprintf(out, "unknown device %q\n", device)
				continue
			}
			current = device
			continue
		}

		port, _ := manager.MockPort(current)
		if _, err := port.WriteString(line + "\r\n"); err != nil {
			fmt.Fprintf(out, "write error: %v\n", err)
			continue
		}

		data, err := port.ReadN(port.InWaiting())
		if err != nil {
			fmt.Fprintf(out, "read error: %v\n", err)
			continue
		}
		if data == nil {
			fmt.Fprintln(out, "(no configured response)")
			continue
		}
		fmt.Fprintf(out, "%q\n", data)
	}
}

func setupLogging(cfg *config.Config, debug bool) *slog.Logger {
	level := slog.LevelInfo

	// DUMMYSERIAL_LOG_LEVEL overrides the fixture setting
	levelName := cfg.Logging.Level
	if env := os.Getenv("DUMMYSERIAL_LOG_LEVEL"); env != "" {
		levelName = env
	}

	if debug {
		level = slog.LevelDebug
	} else {
		switch strings.ToLower(levelName) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler

	// If base path is set, use file logging with rotation
	if cfg.Logging.BasePath != "" {
		logPath := filepath.Join(cfg.Logging.BasePath, cfg.Logging.Filename)
		writer := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
		}
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		// Use console logging
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

package main

import (
	"flag"
	"fmt"
	"os"
)

const appTitle = "WebDrop"

func main() {
	os.Exit(run())
}

func run() int {
	var startURL, logLevel, delegate string
	var showHelp bool

	flag.StringVar(&startURL, "url", "", "page to open instead of the built-in drop page")
	flag.StringVar(&logLevel, "log", "", "log level: error, info or debug")
	flag.StringVar(&delegate, "delegate", "", "drop target to forward to: previous or composition")
	flag.BoolVar(&showHelp, "help", false, "show this help")
	flag.Parse()

	if showHelp {
		printUsage()
		return 0
	}

	cfg := LoadConfig()
	applyFlags(cfg, startURL, logLevel, delegate)

	logFile, err := InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("log file unavailable: %v\n", err)
	} else {
		defer logFile.Close()
	}
	Log.Info("starting", "config", configPath(), "delegate", cfg.Delegate, "logLevel", GetLogLevel())

	cleanup := ensureSingleInstance()
	defer cleanup()

	if err := runWindow(NewDesktopApp(cfg)); err != nil {
		Log.Error("exiting", "error", err)
		fmt.Println(err)
		return 1
	}
	return 0
}

// applyFlags lets non-empty command-line values override the saved config.
func applyFlags(cfg *AppConfig, startURL, logLevel, delegate string) {
	if startURL != "" {
		cfg.StartURL = startURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if delegate != "" {
		cfg.Delegate = delegate
	}
	cfg.normalize()
}

func printUsage() {
	fmt.Println(appTitle, "- see the paths of files dragged onto a web page")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [options]\n", os.Args[0])
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Settings are kept in", configPath())
	fmt.Println("Logs are written to", LogDir())
}

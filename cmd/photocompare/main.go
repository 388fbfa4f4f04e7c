// Photo Compare - wipe and dissolve comparison of two photos

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/config"
	"photo-compare/internal/gui"
	"photo-compare/internal/io"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "Path to a TOML settings file")
	watchConfig := flag.Bool("watch-config", false, "Reload the settings file when it changes")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [first-image second-image]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", gui.AppName, gui.AppVersion)
		return
	}

	args := flag.Args()
	if len(args) != 0 && len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}
	for _, path := range args {
		if err := io.ValidateImageFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Initialize logger
	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    gui.AppVersion,
		"debug_mode": *debugMode,
		"config":     *configPath,
	}).Info("Starting Photo Compare")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Error("Failed to load settings, using defaults")
		cfg = config.Default()
	}

	myApp := app.NewWithID(gui.AppID)
	myApp.SetIcon(theme.MediaPhotoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, logger)

	if *watchConfig && *configPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		watcher, err := config.Watch(ctx, *configPath, logger, func(c *config.Config) {
			fyne.Do(func() { mainApp.ApplyConfig(c) })
		})
		if err != nil {
			logger.WithError(err).Warn("Settings file will not be watched")
		} else {
			defer watcher.Close()
		}
	}

	if len(args) == 2 {
		if err := mainApp.LoadImages(args[0], args[1]); err != nil {
			logger.WithError(err).Error("Failed to load images from command line")
		}
	}

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

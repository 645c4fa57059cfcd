//go:build !js

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ThatOtherAndrew/Aetherfield/internal/config"
	"github.com/ThatOtherAndrew/Aetherfield/internal/engine"
	"github.com/ThatOtherAndrew/Aetherfield/internal/host"
	"github.com/ThatOtherAndrew/Aetherfield/internal/logger"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
	"github.com/ThatOtherAndrew/Aetherfield/pkg/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the field in a window",
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("fullscreen", false, "cover the primary monitor")
	runCmd.Flags().String("shader", "", "path to a custom fragment shader")
	runCmd.Flags().String("log-level", "", "debug, info, warn or error")
	runCmd.Flags().Int("width", 0, "window width in logical pixels")
	runCmd.Flags().Int("height", 0, "window height in logical pixels")
}

// applyFlags overrides settings with any flag given on the command line.
func applyFlags(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("fullscreen") {
		settings.Fullscreen, _ = flags.GetBool("fullscreen")
	}
	if flags.Changed("shader") {
		settings.FragmentShader, _ = flags.GetString("shader")
	}
	if flags.Changed("log-level") {
		settings.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("width") {
		if w, _ := flags.GetInt("width"); w > 0 {
			settings.Width = w
		}
	}
	if flags.Changed("height") {
		if h, _ := flags.GetInt("height"); h > 0 {
			settings.Height = h
		}
	}
}

func Run(cmd *cobra.Command, args []string) error {
	bootLog := logger.New(logger.Config{Level: "info", Component: "desktop"})
	settings, err := config.LoadSettings(bootLog)
	if err != nil {
		bootLog.Error("Failed to load settings", zap.Error(err))
		return err
	}
	applyFlags(cmd, settings)

	log := logger.New(logger.Config{Level: settings.LogLevel, Component: "desktop"})
	defer func() { _ = log.Sync() }()

	win, err := window.NewWindow(window.Options{
		Title:      "Aetherfield",
		Width:      settings.Width,
		Height:     settings.Height,
		Fullscreen: settings.Fullscreen,
		VSync:      settings.VSync,
	})
	if err != nil {
		log.Error("Failed to create window", zap.Error(err))
		return err
	}
	defer win.Destroy()

	win.SetKeyCallback(func(key window.Key) {
		if key == window.KeyEscape {
			win.SetShouldClose(true)
		}
	})

	ctx, err := opengl.Init()
	if err != nil {
		// Keep the window open and inert; the engine reports the missing context.
		log.Error("Failed to initialize OpenGL", zap.Error(err))
	} else {
		log.Info("OpenGL initialized", zap.String("version", ctx.Version()))
	}

	desktop := host.NewDesktop(win, ctx, log)

	field := engine.New(desktop, settings, log, engine.WithPresenceObserver(func(p float32) {
		log.Debug("Presence changed", zap.Float32("presence", p))
	}))
	if err := field.Initialize(); err != nil {
		log.Error("Field disabled", zap.Error(err))
	}

	desktop.Run()

	err = multierr.Combine(field.Teardown(), desktop.Close())
	if err != nil {
		log.Error("Shutdown reported errors", zap.Errors("errors", multierr.Errors(err)))
	}
	return err
}

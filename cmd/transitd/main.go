package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/portal"
	"github.com/spf13/cobra"
)

var version = "dev" // Set during build

func main() {
	cobra.CheckErr(newRootCmd(os.Stdin, os.Stdout).Execute())
}

// app carries what every subcommand needs once the root has set it up
type app struct {
	cfgFile  string
	dataDir  string
	logLevel string

	config Config
	portal *portal.Portal

	in  io.Reader
	out io.Writer
}

// skipSetup marks commands that run without a portal
const skipSetup = "skip-setup"

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "transitd",
		Short:         "Campus transit portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Campus transit portal (transitd) - sign in, browse bus schedules and serve the portal

Session and registered accounts live in the data directory, one JSON record
each. Every command run against the same data directory shares one session.

Configuration file is optional and must be in JSON format:
{
    "data_dir": "./transit-data",
    "listen_addr": "127.0.0.1",
    "port": 8080,
    "password_scheme": "plaintext",
    "min_password_length": 6,
    "screens_file": "./screens.json",
    "timetable_file": "./timetable.json",
    "status_dir": "./transit-data/status",
    "status_interval": 30,
    "access_log_path": "./log/access.log",
    "app_log_path": "./log/transitd.log",
    "log_level": "info"
}`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[skipSetup]; ok {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "path to config file")
	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "d", "", "data directory (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		a.signinCmd(),
		a.signupCmd(),
		a.signoutCmd(),
		a.whoamiCmd(),
		a.openCmd(),
		a.schedulesCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration, starts logging and restores the session
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		path, err := filepath.Abs(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		if err := LoadConfig(path, &a.config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if a.dataDir != "" {
		a.config.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		a.config.LogLevel = a.logLevel
	}
	applyDefaults(&a.config)

	// One-shot commands stay quiet unless asked otherwise
	levelName := a.config.LogLevel
	if levelName == "" && cmd.Name() != "serve" {
		levelName = string(logging.LogLevelWarn)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if err := logging.Initialize(a.config.AccessLogPath, a.config.AppLogPath, level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	a.portal, err = portal.New(portal.Config{
		DataDir:           a.config.DataDir,
		PasswordScheme:    a.config.PasswordScheme,
		MinPasswordLength: a.config.MinPasswordLength,
		ScreensFile:       a.config.ScreensFile,
		TimetableFile:     a.config.TimetableFile,
	})
	if err != nil {
		return fmt.Errorf("failed to create portal: %w", err)
	}
	a.portal.Init()
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Annotations: map[string]string{skipSetup: ""},
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Campus transit portal %s\n", version)
		},
	}
}

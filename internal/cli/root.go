package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/takkernel/takpkg/internal/branding"
	"github.com/takkernel/takpkg/internal/config"
	"github.com/takkernel/takpkg/internal/platform"
	"github.com/takkernel/takpkg/internal/recipe"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	cfgFile string
	debug   bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` assembles distributable packages of the pre-built TAK kernel
libraries. For a target platform it copies headers, static and shared
libraries, debug symbols, and pkg-config files from build/<platform>/ into
<platform>/ and publishes the include and library directories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		bindFlags(cmd)
		return setupLogger()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	flags.String("os", "", "target operating system ("+platform.SupportedNames()+"; default: host)")
	flags.String("arch", "", "target architecture (x86_64, x86, armv8, armv7; default: host)")
	flags.String("build-root", "build", "root of the pre-built artifact tree")
	flags.String("package-root", ".", "root of the package layout")
	flags.String("recipe", "", "recipe file (default ./"+recipe.DefaultFileName+")")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&debug, "debug", false, "shorthand for --log-level=debug")
}

// bindFlags lets explicitly set flags override config file and environment
// values. Flags that are local to a subcommand are bound when present.
func bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	config.BindFlag(config.KeyOS, flags.Lookup("os"))
	config.BindFlag(config.KeyArch, flags.Lookup("arch"))
	config.BindFlag(config.KeyBuildRoot, flags.Lookup("build-root"))
	config.BindFlag(config.KeyPackageRoot, flags.Lookup("package-root"))
	config.BindFlag(config.KeyRecipe, flags.Lookup("recipe"))
	config.BindFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	config.BindFlag(config.KeyVersion, flags.Lookup("pkg-version"))
}

func setupLogger() error {
	level := config.Current().LogLevel
	if debug {
		level = "debug"
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: branding.CLIName(),
		Level:  lvl,
	})
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/brainvm/tape"
)

const (
	envPrefix  = "BRAINVM"
	configName = ".brainvm"
)

// cli holds the state shared by all commands of one invocation.
type cli struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "brainvm [file]",
		Short: "Compile, inspect and run tape programs",
		Long: `brainvm compiles programs written with the eight tape symbols
> < + - . , [ ] into optimized bytecode and runs them. Use # in debug mode
to set a breakpoint.

With no subcommand it behaves like "brainvm run".`,
		Example: `  brainvm hello.b
  brainvm --code ',[.,]'
  echo ',[.,]!hi' | brainvm --stdin
  brainvm dis --code '[-]>+'`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runProgram,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.brainvm.yaml)")
	pf.Bool("no-color", false, "disable colored output")
	pf.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	pf.Uint32("length", tape.DefaultLength, "count of available memory cells")
	pf.Bool("strict", false, "stop execution when overflowing a cell or tape index")
	pf.BoolP("debug", "d", false, "keep # breakpoints and skip optimization")
	if err := c.v.BindPFlags(pf); err != nil {
		panic(err)
	}
	addSourceFlags(root)
	root.Flags().Bool("timing", false, "show execution time")

	root.AddCommand(
		c.newRunCmd(),
		c.newDisCmd(),
		c.newCheckCmd(),
		c.newStatsCmd(),
		c.newVersionCmd(),
	)
	return root
}

// setup reads the config file and environment, then applies the global
// flags. It runs before every command.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if err := c.loadConfig(); err != nil {
		return err
	}
	processGlobalFlags(c.v)
	logger, err := newLogger(cmd.ErrOrStderr(), c.v.GetString("log-level"))
	if err != nil {
		return err
	}
	c.logger = logger
	if used := c.v.ConfigFileUsed(); used != "" {
		c.logger.Debug().Str("config", used).Msg("loaded config file")
	}
	return nil
}

func (c *cli) loadConfig() error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if cfgFile := c.v.GetString("config"); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		// Without a home directory there is no default config to read.
		return nil
	}
	c.v.AddConfigPath(home)
	c.v.SetConfigName(configName)
	c.v.SetConfigType("yaml")
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if goerrors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", filepath.Join(home, configName+".yaml"), err)
	}
	return nil
}

// settings builds the tape settings from flags, environment and config.
func (c *cli) settings() (tape.Settings, error) {
	return tape.NewSettings(
		c.v.GetUint32("length"),
		c.v.GetBool("strict"),
		c.v.GetBool("debug"),
	)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") {
		color.NoColor = true
	}
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), nil
}

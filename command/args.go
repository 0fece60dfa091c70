package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/pmmlkit/config"
	"github.com/mensylisir/pmmlkit/logger"
	"github.com/mensylisir/pmmlkit/runner"
)

// GlobalArgs holds the persistent flags shared by every subcommand. Flags
// that are set override the configuration file.
type GlobalArgs struct {
	ConfigFile string
	LogLevel   string
	LogDir     string
	Verbose    bool
	Classpath  []string // appended to spec.userClasspath
	JavaHome   string

	// Runner replaces the java runner; not bound to a flag.
	Runner runner.Runner
}

func (a *GlobalArgs) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.ConfigFile, "config", "f", "", "Path to a ConverterConfig file.")
	flags.StringVar(&a.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error).")
	flags.StringVar(&a.LogDir, "log-dir", "", "Write logs to a daily rotated file in this directory instead of stderr.")
	flags.BoolVarP(&a.Verbose, "verbose", "v", false, "Verbose output: debug logging and converter diagnostics.")
	flags.StringArrayVar(&a.Classpath, "classpath", nil, "Extra resource bundle, may be repeated.")
	flags.StringVar(&a.JavaHome, "java-home", "", "Java installation to run the converter with.")
}

// load builds the effective configuration and reconfigures the global logger.
func (a *GlobalArgs) load() (*config.ConverterConfig, error) {
	var cfg *config.ConverterConfig
	if a.ConfigFile != "" {
		loaded, err := config.NewLoader(a.ConfigFile).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	spec := &cfg.Spec
	if a.LogLevel != "" {
		spec.Log.Level = a.LogLevel
	}
	if a.LogDir != "" {
		spec.Log.Dir = a.LogDir
	}
	if a.JavaHome != "" {
		spec.JavaHome = a.JavaHome
	}
	spec.UserClasspath = append(spec.UserClasspath, a.Classpath...)
	if a.Verbose {
		spec.Debug = true
	}
	if err := config.Validate(spec); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	level, err := logger.ParseLevel(spec.Log.Level)
	if err != nil {
		return nil, err
	}
	if err := logger.InitGlobalLogger(spec.Log.Dir, a.Verbose, level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *GlobalArgs) runner(spec *config.ConverterSpec) runner.Runner {
	if a.Runner != nil {
		return a.Runner
	}
	return runner.NewJavaRunner(spec.JavaHome, spec.Encoding, nil)
}

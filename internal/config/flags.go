package config

// This file implements CLI flag parsing and help text.
// Flags are parsed first so --config is known, then the config file and the
// environment are applied, and finally only the flags the user actually
// passed are copied over. Positional directories win over everything.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses args (without the program name) into cfg, loading the
// config file and environment on the way. On --help or --version it prints
// and exits. On error it returns non-nil (unknown flag, bad config file,
// too many positional args).
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("hardlinker", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var fv flagValues
	defineBehaviorFlags(fs, &fv)
	defineDisplayFlags(fs, &fv)
	defineUtilityFlags(fs, &fv)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fv.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if fv.showVersion {
		fmt.Fprintln(os.Stdout, "hardlinker v"+version)
		os.Exit(0)
	}

	if err := LoadDotEnv(); err != nil {
		return err
	}

	path, required := DefaultConfigFile, false
	if v := env(EnvConfigFile); v != "" {
		path, required = v, true
	}
	if fv.configFile != "" {
		path, required = fv.configFile, true
	}
	if err := LoadFile(cfg, path, required); err != nil {
		return err
	}
	cfg.ConfigFile = path

	if err := ApplyEnv(cfg); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) { applyFlag(cfg, &fv, f.Name) })

	return parsePositionalArgs(fs, cfg)
}

// flagValues holds parsed flag values until the config file and
// environment have been applied.
type flagValues struct {
	configFile   string
	dryRun       bool
	debug        bool
	depth        int
	exclude      stringList
	workers      int
	noTargetSubs bool
	verbose      bool
	forceColor   bool
	noColor      bool
	logFile      string
	check        bool
	showVersion  bool
	showHelp     bool
}

// defineBehaviorFlags registers dry-run, debug, depth, exclude, workers and target-subtitle flags.
func defineBehaviorFlags(fs *flag.FlagSet, fv *flagValues) {
	fs.BoolVar(&fv.dryRun, "dry-run", false, "Preview only; do not create links")
	fs.BoolVar(&fv.dryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&fv.debug, "debug", false, "Dry run with verbose output")
	fs.IntVar(&fv.depth, "depth", 1, "Folder levels to descend below each root")
	fs.Var(&fv.exclude, "exclude", "Skip folders whose path contains this text (repeatable)")
	fs.IntVar(&fv.workers, "workers", 4, "Files resolved and linked in parallel")
	fs.IntVar(&fv.workers, "j", 4, "Same as --workers")
	fs.BoolVar(&fv.noTargetSubs, "no-target-subs", false, "Do not relink subtitles already in the target")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, fv *flagValues) {
	fs.BoolVar(&fv.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&fv.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&fv.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&fv.verbose, "v", false, "Same as --verbose")
	fs.StringVar(&fv.logFile, "log", DefaultLogFile, "Append logs to file (empty: console only)")
	fs.StringVar(&fv.logFile, "l", DefaultLogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, fv *flagValues) {
	fs.StringVar(&fv.configFile, "config", "", "JSON config file (default: ./"+DefaultConfigFile+" if present)")
	fs.BoolVar(&fv.check, "check", false, "Run link diagnostics and exit")
	fs.BoolVar(&fv.check, "c", false, "Same as --check")
	fs.BoolVar(&fv.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&fv.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&fv.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&fv.showHelp, "h", false, "Same as --help")
}

// applyFlag copies one explicitly passed flag into cfg.
func applyFlag(cfg *Config, fv *flagValues, name string) {
	switch name {
	case "dry-run", "d":
		cfg.DryRun = fv.dryRun
	case "debug":
		cfg.Debug = fv.debug
	case "depth":
		cfg.MaxDepth = fv.depth
	case "exclude":
		cfg.Exclude = append(cfg.Exclude, fv.exclude...)
	case "workers", "j":
		cfg.Workers = fv.workers
	case "no-target-subs":
		cfg.LinkTargetSubtitles = !fv.noTargetSubs
	case "verbose", "v":
		cfg.Verbose = fv.verbose
	case "color":
		if fv.forceColor && !fv.noColor {
			cfg.ColorMode = ColorAlways
		}
	case "no-color":
		if fv.noColor {
			cfg.ColorMode = ColorNever
		}
	case "log", "l":
		cfg.LogFile = fv.logFile
	case "check", "c":
		cfg.CheckOnly = fv.check
	}
}

// parsePositionalArgs sets SourceDir and TargetDir from the optional
// positional args. Either none or both must be given.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 2:
		cfg.SourceDir = NormalizeDirArg(args[0])
		cfg.TargetDir = NormalizeDirArg(args[1])
		return nil
	default:
		return fmt.Errorf("need exactly source_dir and target_dir (got %d argument(s))", len(args))
	}
}

// printUsage writes the column-aligned help text to stderr.
func printUsage(version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "hardlinker v" + version + " - organize anime episodes with hard links"},
		{"", ""},
		{"  hardlinker [OPTIONS] [<source_dir> <target_dir>]", ""},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not create links"},
		{"  --debug", "Dry run with verbose output"},
		{"  --depth <n>", "Folder levels below each root (default: 1)"},
		{"  --exclude <text>", "Skip folders whose path contains text (repeatable)"},
		{"  -j, --workers <n>", "Parallel files per phase (default: 4)"},
		{"  --no-target-subs", "Do not relink subtitles already in the target"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "JSON config file (default: ./" + DefaultConfigFile + ")"},
		{"  -l, --log <path>", "Append logs to file (default: " + DefaultLogFile + "; \"\" for none)"},
		{"  -c, --check", "Link diagnostics (paths, filesystem, hard links)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Environment", ""},
		{"  " + EnvSourceDir, "Source directory"},
		{"  " + EnvTargetDir, "Target directory"},
		{"  " + EnvDebug + ", " + EnvDryRun, "true/false"},
		{"  " + EnvLogFile + ", " + EnvConfigFile, "Log file, config file"},
		{"  " + EnvMaxDepth + ", " + EnvWorkers, "Same as --depth, --workers"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// stringList is a repeatable string flag; comma-separated values are split.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

// parseInt parses a string as an integer for environment overrides; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number (got %q)", name, s)
	}
	return n, nil
}

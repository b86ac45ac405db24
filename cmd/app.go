// Package cmd implements the pos command line tool.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables read as settings, and passed to extensions.
const (
	EnvLedgerFile = "POS_LEDGER_FILE"
	EnvCurrency   = "POS_CURRENCY"
	EnvVerbose    = "POS_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = flag.String("ledger-file", "", "Path to the journal file (JSONL). Defaults to $"+EnvLedgerFile+" or journal.jsonl")
	currency   = flag.String("currency", "", "Reporting currency. Defaults to $"+EnvCurrency+" or USD")
	configFile = flag.String("config", ".pos.yaml", "Path to the YAML configuration file")
	verbose    = flag.Bool("v", false, "Verbose logging")
	rawOutput  = flag.Bool("raw", false, "Print raw markdown instead of rendering it for the terminal")
)

// Settings are the resolved global options.
type Settings struct {
	Ledger   string `yaml:"ledger"`
	Currency string `yaml:"currency"`
	Verbose  bool   `yaml:"verbose"`
}

var defaults = Settings{Ledger: "journal.jsonl", Currency: "USD"}

// settings is resolved by Init.
var settings = defaults

// stdout is where commands print their reports.
var stdout io.Writer = os.Stdout

// Init resolves the settings and configures logging. It must be called
// after flag.Parse.
//
// Settings are taken, by order of precedence, from the command line flags,
// the environment (a .env file is loaded first), the YAML configuration
// file, and the defaults.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load .env: %w", err)
	}
	s, err := loadSettings(*configFile, os.Getenv)
	if err != nil {
		return err
	}
	if *ledgerFile != "" {
		s.Ledger = *ledgerFile
	}
	if *currency != "" {
		s.Currency = *currency
	}
	if *verbose {
		s.Verbose = true
	}
	settings = s

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if s.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.WithFields(log.Fields{"ledger": s.Ledger, "currency": s.Currency}).Debug("settings resolved")
	return nil
}

// loadSettings merges the defaults, the YAML file at path (if it exists) and
// the environment.
func loadSettings(path string, getenv func(string) string) (Settings, error) {
	s := defaults
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no configuration file %q", path)
	case err != nil:
		return s, fmt.Errorf("could not read configuration %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("invalid configuration %q: %w", path, err)
		}
	}

	if v := getenv(EnvLedgerFile); v != "" {
		s.Ledger = v
	}
	if v := getenv(EnvCurrency); v != "" {
		s.Currency = v
	}
	if v := getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("invalid %s=%q: %w", EnvVerbose, v, err)
		}
		s.Verbose = b
	}
	return s, nil
}

// Commands lists the subcommands, grouped.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"orders": {
			&orderCmd{side: positions.Buy},
			&orderCmd{side: positions.Sell},
			&clearCmd{command: positions.CmdClearPositions},
			&clearCmd{command: positions.CmdClearOrders},
		},
		"reports": {
			&positionsCmd{},
			&ordersCmd{},
			&valueCmd{},
			&queryCmd{},
		},
		"journal": {
			&checkCmd{},
		},
		"help": {
			&topicCmd{},
		},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// openLedger replays the journal into a new ledger. A missing journal is an
// empty ledger. Rejected entries are logged by the replay and ignored here,
// `pos check` reports them.
func openLedger() (*positions.Ledger, error) {
	entries, err := decodeJournal(settings.Ledger)
	if err != nil {
		return nil, err
	}
	l := positions.NewLedger(settings.Currency)
	if err := positions.Replay(l, entries); err != nil {
		log.Debugf("journal %q has rejected entries", settings.Ledger)
	}
	return l, nil
}

func decodeJournal(path string) ([]positions.Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("journal %q does not exist yet", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal: %w", err)
	}
	defer f.Close()
	entries, err := positions.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal %q: %w", path, err)
	}
	return entries, nil
}

// appendEntry appends a single entry to the journal, creating it if needed.
func appendEntry(path string, e positions.Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open journal %q: %w", path, err)
	}
	if err := positions.EncodeEntry(f, e); err != nil {
		f.Close()
		return fmt.Errorf("could not write to journal %q: %w", path, err)
	}
	return f.Close()
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range Commands() {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

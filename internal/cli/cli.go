package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"hanobf/internal/config"
	"hanobf/internal/rules"
)

const (
	Name      = "hanobf"
	envPrefix = "HANOBF"
)

type Options struct {
	ShowHelp    bool
	ListRules   bool
	Interactive bool
	ConfigPath  string
	Rules       []rules.ID
	// Seed is only meaningful when SeedSet is true.
	Seed      uint64
	SeedSet   bool
	Variants  int
	Normalize bool
	Plain     bool
	Quiet     bool
	Text      string
}

type flags struct {
	fs          *ff.FlagSet
	config      *string
	rules       *string
	seed        *string
	variants    *int64
	interactive *bool
	normalize   *bool
	plain       *bool
	quiet       *bool
	listRules   *bool
}

func newFlags() *flags {
	fs := ff.NewFlagSet(Name)
	return &flags{
		fs:          fs,
		config:      fs.String('c', "config", "", "path to "+config.DefaultFileName+" (default: ./"+config.DefaultFileName+" if present)"),
		rules:       fs.StringLong("rules", "", "comma-separated rules to draw from (overrides the config file)"),
		seed:        fs.StringLong("seed", "", "seed for a reproducible run (overrides the config file)"),
		variants:    fs.Int64Long("variants", 1, "number of independent variants to print"),
		interactive: fs.Bool('i', "interactive", "prompt for sentences and reroll results"),
		normalize:   fs.BoolLong("nfc", "compose conjoining jamo into syllables before obfuscating"),
		plain:       fs.BoolLong("plain", "disable colors and styling"),
		quiet:       fs.Bool('q', "quiet", "print only the obfuscated text"),
		listRules:   fs.BoolLong("list-rules", "list available rules and exit"),
	}
}

// Parse reads flags from args (without the program name) and HANOBF_*
// environment variables. Remaining arguments are joined into the input text.
func Parse(args []string) (Options, error) {
	f := newFlags()
	if err := ff.Parse(f.fs, args, ff.WithEnvVarPrefix(envPrefix)); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			return Options{ShowHelp: true}, nil
		}
		return Options{}, err
	}

	opts := Options{
		ListRules:   *f.listRules,
		Interactive: *f.interactive,
		ConfigPath:  *f.config,
		Variants:    int(*f.variants),
		Normalize:   *f.normalize,
		Plain:       *f.plain,
		Quiet:       *f.quiet,
		Text:        strings.Join(f.fs.GetArgs(), " "),
	}

	if opts.Variants < 1 {
		return Options{}, fmt.Errorf("--variants must be at least 1, got %d", opts.Variants)
	}
	if opts.Text != "" && opts.Interactive {
		return Options{}, errors.New("--interactive cannot be combined with text arguments")
	}
	if opts.Variants > 1 && opts.Text == "" {
		return Options{}, errors.New("--variants needs text arguments")
	}

	if *f.rules != "" {
		ids, err := rules.ParseIDs(config.SplitList(*f.rules))
		if err != nil {
			return Options{}, fmt.Errorf("--rules: %w", err)
		}
		if len(ids) == 0 {
			return Options{}, errors.New("--rules requires at least one rule")
		}
		opts.Rules = ids
	}

	if *f.seed != "" {
		seed, err := strconv.ParseUint(*f.seed, 10, 64)
		if err != nil {
			return Options{}, fmt.Errorf("--seed: %w", err)
		}
		opts.Seed = seed
		opts.SeedSet = true
	}
	return opts, nil
}

// Apply layers command line overrides on top of a loaded config.
func (o Options) Apply(cfg config.Config) config.Config {
	if len(o.Rules) > 0 {
		cfg.Enabled = o.Rules
	}
	if o.SeedSet {
		cfg.Seed = o.Seed
	}
	if o.Normalize {
		cfg.Normalize = true
	}
	if o.Plain {
		cfg.Color = false
	}
	return cfg
}

func Usage() string {
	return fmt.Sprintf(`%s - Hangul text obfuscator
Usage: %s [options] [text...]

With no text, lines are read from stdin when it is piped, otherwise an
interactive session starts.

%s`, Name, Name, ffhelp.Flags(newFlags().fs))
}

func RuleList() string {
	var b strings.Builder
	for _, id := range rules.AllIDs() {
		fmt.Fprintf(&b, "%-18s %s\n", id, id.Label())
	}
	return b.String()
}

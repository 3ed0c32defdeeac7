// Package obfuscate turns Hangul text into a noisy but readable variant by
// running a random subset of jamo-level sound-change rules over it.
package obfuscate

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"hanobf/internal/rules"
)

var ErrNoRules = errors.New("no rules enabled")

type Config struct {
	// Enabled lists the rules a selection is drawn from.
	Enabled       []rules.ID
	Probabilities rules.Probabilities
	// Normalize composes conjoining jamo sequences (NFC) before any rule runs.
	Normalize bool
	Logger    *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Enabled:       rules.AllIDs(),
		Probabilities: rules.DefaultProbabilities(),
	}
}

// Notifier is told which rules were picked before they are applied.
type Notifier interface {
	RulesSelected(ids []rules.ID)
}

type NotifierFunc func(ids []rules.ID)

func (f NotifierFunc) RulesSelected(ids []rules.ID) { f(ids) }

type Result struct {
	Selected []rules.ID
	Text     string
}

func (r Result) Names() []string {
	return lo.Map(r.Selected, func(id rules.ID, _ int) string { return id.Label() })
}

// Obfuscator owns a random stream and is not safe for concurrent use. Use
// Batch or one Obfuscator per goroutine instead.
type Obfuscator struct {
	rules     map[rules.ID]rules.Rule
	order     []rules.ID
	rng       rules.Rand
	notify    Notifier
	normalize bool
	log       *slog.Logger
}

func New(cfg Config, rng rules.Rand, notify Notifier) (*Obfuscator, error) {
	if rng == nil {
		rng = NewRand(0, 0)
	}
	if len(cfg.Enabled) == 0 {
		return nil, ErrNoRules
	}
	if dups := lo.FindDuplicates(cfg.Enabled); len(dups) > 0 {
		return nil, fmt.Errorf("obfuscate: rule %s enabled twice", dups[0])
	}
	built, err := rules.Build(cfg.Enabled, cfg.Probabilities)
	if err != nil {
		return nil, fmt.Errorf("obfuscate: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Obfuscator{
		rules:     lo.KeyBy(built, func(r rules.Rule) rules.ID { return r.ID() }),
		order:     append([]rules.ID(nil), cfg.Enabled...),
		rng:       rng,
		notify:    notify,
		normalize: cfg.Normalize,
		log:       log,
	}, nil
}

// Select draws how many rules to use, uniformly from 1 to the number
// enabled, then draws that many distinct rules. The draw order is the
// order they are applied in.
func (o *Obfuscator) Select() []rules.ID {
	n := len(o.order)
	k := 1 + o.rng.IntN(n)

	pool := append([]rules.ID(nil), o.order...)
	for i := 0; i < k; i++ {
		j := i + o.rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func (o *Obfuscator) Apply(ids []rules.ID, text string) string {
	for _, id := range ids {
		rule, ok := o.rules[id]
		if !ok {
			o.log.Warn("skipping rule that is not enabled", "rule", id)
			continue
		}
		before := text
		text = rule.Apply(text, o.rng)
		o.log.Debug("rule applied", "rule", id, "changed", before != text)
	}
	return text
}

func (o *Obfuscator) Obfuscate(text string) Result {
	if o.normalize {
		text = norm.NFC.String(text)
	}
	selected := o.Select()
	o.log.Debug("rules selected", "rules", selected)
	if o.notify != nil {
		o.notify.RulesSelected(append([]rules.ID(nil), selected...))
	}
	return Result{Selected: selected, Text: o.Apply(selected, text)}
}

// Obfuscate runs text through every rule enabled by default, drawing from
// a freshly seeded generator.
func Obfuscate(text string) Result {
	o, err := New(DefaultConfig(), nil, nil)
	if err != nil {
		panic(err)
	}
	return o.Obfuscate(text)
}

// NewRand returns a PCG generator for (seed, stream). A zero seed draws a
// random one.
func NewRand(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, stream))
}

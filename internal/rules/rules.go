package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Rand is the subset of *math/rand/v2.Rand the rules draw from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type ID int

const (
	Liaison ID = iota
	OnsetDuplication
	JamoReplacement
	FillerFinal
)

var ErrUnknownRule = errors.New("unknown rule")

var allIDs = []ID{Liaison, OnsetDuplication, JamoReplacement, FillerFinal}

func AllIDs() []ID {
	return append([]ID(nil), allIDs...)
}

func (id ID) String() string {
	switch id {
	case Liaison:
		return "liaison"
	case OnsetDuplication:
		return "onset-duplication"
	case JamoReplacement:
		return "jamo-replacement"
	case FillerFinal:
		return "filler-final"
	default:
		return "unknown"
	}
}

// Label is the name shown to people when a rule is selected.
func (id ID) Label() string {
	switch id {
	case Liaison:
		return "연음 적용"
	case OnsetDuplication:
		return "받침 중복"
	case JamoReplacement:
		return "유사 자모 대체"
	case FillerFinal:
		return "의미없는 받침 추가"
	default:
		return id.String()
	}
}

func ParseID(name string) (ID, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	id, ok := lo.Find(allIDs, func(id ID) bool { return id.String() == normalized })
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return id, nil
}

func ParseIDs(names []string) ([]ID, error) {
	ids := make([]ID, 0, len(names))
	for _, name := range names {
		id, err := ParseID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return lo.Uniq(ids), nil
}

type Probabilities struct {
	Liaison          float64
	OnsetDuplication float64
	JamoReplacement  float64
	FillerFinal      float64
}

func DefaultProbabilities() Probabilities {
	return Probabilities{
		Liaison:          0.7,
		OnsetDuplication: 0.7,
		JamoReplacement:  0.7,
		FillerFinal:      0.3,
	}
}

func (p Probabilities) For(id ID) float64 {
	switch id {
	case Liaison:
		return p.Liaison
	case OnsetDuplication:
		return p.OnsetDuplication
	case JamoReplacement:
		return p.JamoReplacement
	case FillerFinal:
		return p.FillerFinal
	default:
		return 0
	}
}

// Rule rewrites a whole text. Characters that are not Hangul syllables are
// copied through, and the output always has as many runes as the input.
type Rule interface {
	ID() ID
	Apply(text string, rng Rand) string
}

func New(id ID, p Probabilities) (Rule, error) {
	prob := p.For(id)
	switch id {
	case Liaison:
		return LiaisonRule{Probability: prob}, nil
	case OnsetDuplication:
		return OnsetDuplicationRule{Probability: prob}, nil
	case JamoReplacement:
		return JamoReplacementRule{Probability: prob}, nil
	case FillerFinal:
		return FillerFinalRule{Probability: prob}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(id))
	}
}

func Build(ids []ID, p Probabilities) ([]Rule, error) {
	out := make([]Rule, 0, len(ids))
	for _, id := range ids {
		rule, err := New(id, p)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

func fires(rng Rand, p float64) bool {
	return rng.Float64() < p
}

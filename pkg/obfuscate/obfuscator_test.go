package obfuscate

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanobf/internal/hangul"
	"hanobf/internal/rules"
)

// scriptedRand answers IntN from a script and Float64 with a constant.
type scriptedRand struct {
	ints  []int
	float float64
	calls int
}

func (s *scriptedRand) Float64() float64 { return s.float }

func (s *scriptedRand) IntN(n int) int {
	if s.calls >= len(s.ints) {
		return 0
	}
	v := s.ints[s.calls]
	s.calls++
	if v >= n {
		panic("scripted draw out of range")
	}
	return v
}

type recorder struct {
	calls [][]rules.ID
}

func (r *recorder) RulesSelected(ids []rules.ID) {
	r.calls = append(r.calls, ids)
}

func TestSelectAllRules(t *testing.T) {
	// k = 1 + 3, then pick index 2, 3, 2, 3 of the shrinking pool.
	rng := &scriptedRand{ints: []int{3, 2, 2, 0, 0}}
	o, err := New(DefaultConfig(), rng, nil)
	require.NoError(t, err)

	got := o.Select()
	want := []rules.ID{rules.JamoReplacement, rules.FillerFinal, rules.Liaison, rules.OnsetDuplication}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectSingleRule(t *testing.T) {
	rng := &scriptedRand{ints: []int{0, 3}}
	o, err := New(DefaultConfig(), rng, nil)
	require.NoError(t, err)

	assert.Equal(t, []rules.ID{rules.FillerFinal}, o.Select())
}

func TestSelectIsDistinctAndNonEmpty(t *testing.T) {
	o, err := New(DefaultConfig(), rand.New(rand.NewPCG(3, 4)), nil)
	require.NoError(t, err)

	sizes := map[int]int{}
	for range 2000 {
		ids := o.Select()
		require.NotEmpty(t, ids)
		require.LessOrEqual(t, len(ids), 4)
		require.Len(t, lo.Uniq(ids), len(ids))
		sizes[len(ids)]++
	}
	for k := 1; k <= 4; k++ {
		assert.Greater(t, sizes[k], 300, "subset size %d drawn too rarely", k)
	}
}

func TestObfuscateAllRulesReportsFourNames(t *testing.T) {
	rng := &scriptedRand{ints: []int{3, 0, 0, 0, 0}, float: 0.99}
	rec := &recorder{}
	o, err := New(DefaultConfig(), rng, rec)
	require.NoError(t, err)

	res := o.Obfuscate("먹어 나비")
	require.Len(t, rec.calls, 1)
	assert.Equal(t, rules.AllIDs(), rec.calls[0])
	assert.Equal(t, rules.AllIDs(), res.Selected)
	assert.Equal(t, []string{"연음 적용", "받침 중복", "유사 자모 대체", "의미없는 받침 추가"}, res.Names())
	// Draws of 0.99 never clear any threshold.
	assert.Equal(t, "먹어 나비", res.Text)
}

func TestApplyRunsInSelectionOrder(t *testing.T) {
	o, err := New(DefaultConfig(), &scriptedRand{float: 0}, nil)
	require.NoError(t, err)

	// Liaison opens 먹, then onset duplication closes it again with ᆨ.
	assert.Equal(t, "먹거", o.Apply([]rules.ID{rules.Liaison, rules.OnsetDuplication}, "먹어"))
	// The other way round onset duplication finds 먹 closed and does nothing.
	assert.Equal(t, "머거", o.Apply([]rules.ID{rules.OnsetDuplication, rules.Liaison}, "먹어"))
}

func TestApplySkipsRulesThatAreNotEnabled(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = []rules.ID{rules.Liaison}
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o, err := New(cfg, &scriptedRand{float: 0}, nil)
	require.NoError(t, err)

	assert.Equal(t, "가", o.Apply([]rules.ID{rules.JamoReplacement}, "가"))
	assert.Contains(t, buf.String(), "skipping rule")
}

func TestObfuscatePassesThroughNonHangul(t *testing.T) {
	o, err := New(DefaultConfig(), rand.New(rand.NewPCG(9, 9)), nil)
	require.NoError(t, err)
	for range 100 {
		res := o.Obfuscate("plain ASCII text, 123!")
		assert.Equal(t, "plain ASCII text, 123!", res.Text)
	}
}

func TestObfuscateKeepsEveryCharacter(t *testing.T) {
	o, err := New(DefaultConfig(), rand.New(rand.NewPCG(5, 6)), nil)
	require.NoError(t, err)
	input := "닭이 울면 해가 떠요. 밥을 먹었어요! abc"
	in := hangul.Scan(input)
	for range 200 {
		res := o.Obfuscate(input)
		out := hangul.Scan(res.Text)
		require.Equal(t, utf8.RuneCountInString(input), utf8.RuneCountInString(res.Text))
		for i := range in {
			assert.Equal(t, in[i].Hangul, out[i].Hangul, "position %d changed kind in %q", i, res.Text)
			if !in[i].Hangul {
				assert.Equal(t, in[i].Rune, out[i].Rune)
			}
		}
	}
}

func TestObfuscateNormalizesWhenAsked(t *testing.T) {
	decomposed := "\u1100\u1161"
	cfg := DefaultConfig()
	cfg.Enabled = []rules.ID{rules.JamoReplacement}

	o, err := New(cfg, &scriptedRand{float: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, decomposed, o.Obfuscate(decomposed).Text, "conjoining jamo are opaque without normalization")

	cfg.Normalize = true
	o, err = New(cfg, &scriptedRand{float: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, "갸", o.Obfuscate(decomposed).Text)
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = nil
	_, err := New(cfg, nil, nil)
	assert.ErrorIs(t, err, ErrNoRules)

	cfg.Enabled = []rules.ID{rules.Liaison, rules.Liaison}
	_, err = New(cfg, nil, nil)
	assert.ErrorContains(t, err, "enabled twice")

	cfg.Enabled = []rules.ID{rules.ID(99)}
	_, err = New(cfg, nil, nil)
	assert.ErrorIs(t, err, rules.ErrUnknownRule)
}

func TestNotifierFunc(t *testing.T) {
	var seen []rules.ID
	o, err := New(DefaultConfig(), &scriptedRand{ints: []int{0, 1}}, NotifierFunc(func(ids []rules.ID) { seen = ids }))
	require.NoError(t, err)

	res := o.Obfuscate("가")
	assert.Equal(t, []rules.ID{rules.OnsetDuplication}, seen)
	assert.Equal(t, seen, res.Selected)
}

func TestPackageObfuscate(t *testing.T) {
	res := Obfuscate("안녕하세요")
	assert.NotEmpty(t, res.Selected)
	assert.Equal(t, 5, utf8.RuneCountInString(res.Text))
}

func TestBatchIsReproducible(t *testing.T) {
	texts := []string{"먹어", "나비야 나비야", "한국어 문장입니다", "abc", ""}
	first, err := Batch(context.Background(), DefaultConfig(), 42, texts)
	require.NoError(t, err)
	second, err := Batch(context.Background(), DefaultConfig(), 42, texts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("seeded batches differ (-first +second):\n%s", diff)
	}
	require.Len(t, first, len(texts))
	assert.Equal(t, "abc", first[3].Text)
	assert.Equal(t, "", first[4].Text)
}

func TestBatchMatchesSequentialStreams(t *testing.T) {
	texts := []string{"옷이 예뻐요", "꽃을 봐요"}
	got, err := Batch(context.Background(), DefaultConfig(), 7, texts)
	require.NoError(t, err)

	for i, text := range texts {
		o, err := New(DefaultConfig(), rand.New(rand.NewPCG(7, uint64(i))), nil)
		require.NoError(t, err)
		assert.Equal(t, o.Obfuscate(text), got[i])
	}
}

func TestBatchFromContinuesStreams(t *testing.T) {
	texts := []string{"닭이 울어요", "옷이 예뻐요", "나비가 날아요", "밥을 먹어요"}
	whole, err := Batch(context.Background(), DefaultConfig(), 9, texts)
	require.NoError(t, err)

	head, err := BatchFrom(context.Background(), DefaultConfig(), 9, 0, texts[:1])
	require.NoError(t, err)
	tail, err := BatchFrom(context.Background(), DefaultConfig(), 9, 1, texts[1:])
	require.NoError(t, err)

	if diff := cmp.Diff(whole, append(head, tail...)); diff != "" {
		t.Fatalf("chunked batch differs (-whole +chunked):\n%s", diff)
	}
}

func TestBatchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Batch(ctx, DefaultConfig(), 1, []string{"가", "나"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = nil
	_, err := Batch(context.Background(), cfg, 1, []string{"가"})
	assert.ErrorIs(t, err, ErrNoRules)
}

func TestVariants(t *testing.T) {
	got, err := Variants(context.Background(), DefaultConfig(), 11, "밥을 먹어요", 6)
	require.NoError(t, err)
	require.Len(t, got, 6)
	for _, res := range got {
		assert.Equal(t, 6, utf8.RuneCountInString(res.Text))
	}
}

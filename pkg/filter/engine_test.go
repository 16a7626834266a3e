package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ti-tracker/pkg/models"
	"ti-tracker/pkg/testutil"
)

const ti = "The International 2023"

func ids(recs []*models.MatchRecord) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.MatchID
	}
	return out
}

func fixture() []*models.MatchRecord {
	// 1: 一个英雄命中; 2: 两个命中; 3: 无英雄
	one := testutil.WithHeroes(testutil.Match(1, ti), "Axe", "Lion", "Lina")
	two := testutil.WithHeroes(testutil.Match(2, ti), "Axe", "Pudge", "", "", "", "Invoker")
	none := testutil.Match(3, ti)
	none.Radiant[0].Name = "Alice"
	none.RadiantTeamName = "Team Spirit"
	return testutil.Pointers(one, two, none)
}

func TestApplyNoCriteriaReturnsAll(t *testing.T) {
	recs := fixture()
	res := Apply(recs, Criteria{Combinator: CombinatorOr})
	assert.Equal(t, []int64{1, 2, 3}, ids(res.Matches))
	assert.False(t, res.FellBack)

	res = Apply(recs, Criteria{})
	assert.Equal(t, []int64{1, 2, 3}, ids(res.Matches))
}

func TestApplyHeroThresholdByMode(t *testing.T) {
	recs := fixture()
	heroes := []string{"Axe", "Invoker"}

	or := Apply(recs, Criteria{Heroes: heroes, Combinator: CombinatorOr})
	assert.Equal(t, []int64{1, 2}, ids(or.Matches), "OR needs a single hero hit")

	and := Apply(recs, Criteria{Heroes: heroes, Combinator: CombinatorAnd})
	assert.Equal(t, []int64{2}, ids(and.Matches), "AND needs at least two hero hits")
	assert.False(t, and.FellBack)
}

func TestApplyAbsentHeroNeverMatches(t *testing.T) {
	rec := testutil.Match(7, ti)
	assert.Equal(t, 0, heroHits(&rec, map[string]struct{}{"": {}, "Axe": {}}))
}

func TestApplyPlayerExactMatch(t *testing.T) {
	recs := fixture()

	res := Apply(recs, Criteria{Player: "Alice"})
	assert.Equal(t, []int64{3}, ids(res.Matches))

	res = Apply(recs, Criteria{Player: "Ali"})
	assert.True(t, res.FellBack, "substring must not match")
	assert.Equal(t, []int64{1, 2, 3}, ids(res.Matches))
}

func TestApplyTeamExactMatch(t *testing.T) {
	recs := fixture()

	res := Apply(recs, Criteria{Team: "Dire 2"})
	assert.Equal(t, []int64{2}, ids(res.Matches))

	res = Apply(recs, Criteria{Team: "Team"})
	assert.True(t, res.FellBack)
}

func TestApplyCombinators(t *testing.T) {
	recs := fixture()

	tests := []struct {
		name string
		c    Criteria
		want []int64
		back bool
	}{
		{"or player and team", Criteria{Player: "Alice", Team: "Radiant 1", Combinator: CombinatorOr}, []int64{1, 3}, false},
		{"and player and team", Criteria{Player: "Alice", Team: "Team Spirit", Combinator: CombinatorAnd}, []int64{3}, false},
		{"and disjoint falls back", Criteria{Player: "Alice", Team: "Radiant 1", Combinator: CombinatorAnd}, []int64{1, 2, 3}, true},
		{"or hero or team", Criteria{Heroes: []string{"Lina"}, Team: "Team Spirit", Combinator: CombinatorOr}, []int64{1, 3}, false},
		{"and hero with team", Criteria{Heroes: []string{"Axe", "Pudge"}, Team: "Radiant 2", Combinator: CombinatorAnd}, []int64{2}, false},
		{"and single hero hit falls back", Criteria{Heroes: []string{"Lina"}, Team: "Radiant 1", Combinator: CombinatorAnd}, []int64{1, 2, 3}, true},
		{"unknown hero falls back", Criteria{Heroes: []string{"Nobody"}, Combinator: CombinatorOr}, []int64{1, 2, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(recs, tt.c)
			assert.Equal(t, tt.want, ids(res.Matches))
			assert.Equal(t, tt.back, res.FellBack)
		})
	}
}

func TestApplyPreservesPointers(t *testing.T) {
	recs := fixture()
	res := Apply(recs, Criteria{Player: "Alice"})
	require.Len(t, res.Matches, 1)
	assert.Same(t, recs[2], res.Matches[0])
}

func TestParseCombinator(t *testing.T) {
	tests := []struct {
		in      string
		want    Combinator
		wantErr bool
	}{
		{"", CombinatorAnd, false},
		{"AND", CombinatorAnd, false},
		{" or ", CombinatorOr, false},
		{"xor", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCombinator(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestCriteriaActive(t *testing.T) {
	assert.False(t, Criteria{}.Active())
	assert.True(t, Criteria{Heroes: []string{"Axe"}}.Active())
	assert.True(t, Criteria{Player: "x"}.Active())
	assert.True(t, Criteria{Team: "x"}.Active())
}

func TestCriteriaNormalize(t *testing.T) {
	c := Criteria{Heroes: []string{" Axe", "", "  "}, Player: " Alice ", Team: "\tTeam Spirit", Combinator: CombinatorOr}.Normalize()
	assert.Equal(t, Criteria{Heroes: []string{"Axe"}, Player: "Alice", Team: "Team Spirit", Combinator: CombinatorOr}, c)

	assert.False(t, Criteria{Heroes: []string{" "}, Player: "  "}.Normalize().Active())
}

func TestApplyTrimsCriteria(t *testing.T) {
	recs := fixture()

	res := Apply(recs, Criteria{Player: "  Alice "})
	assert.Equal(t, []int64{3}, ids(res.Matches))
	assert.False(t, res.FellBack)

	// 只有空白的条件视为未激活
	res = Apply(recs, Criteria{Player: "   ", Heroes: []string{""}})
	assert.Equal(t, []int64{1, 2, 3}, ids(res.Matches))
	assert.False(t, res.FellBack)
}

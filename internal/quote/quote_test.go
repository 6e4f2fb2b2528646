package quote

import (
	"testing"
	"time"

	"github.com/theirongolddev/seventy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource returns the queued indexes in order, cycling.
type seqSource struct {
	idx   []int
	calls int
}

func (s *seqSource) IntN(n int) int {
	v := s.idx[s.calls%len(s.idx)] % n
	s.calls++
	return v
}

func TestDefaultSet(t *testing.T) {
	set := Default()
	assert.Equal(t, "Jim Rohn", set.Author)
	assert.Len(t, set.Quotes, 10)
	assert.Equal(t, "Discipline is the bridge between goals and accomplishment.", set.Quotes[0])
}

func TestGet_SameDayReturnsSameQuote(t *testing.T) {
	src := &seqSource{idx: []int{2, 7}}
	sel := NewSelector(store.NewMemory(), WithSource(src))

	morning := time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.October, 15, 23, 59, 0, 0, time.UTC)

	first := sel.Get(morning)
	second := sel.Get(evening)
	assert.Equal(t, first, second)
	assert.Equal(t, Default().Quotes[2], first)
	assert.Equal(t, 1, src.calls)
}

func TestGet_NewDayPicksAgain(t *testing.T) {
	src := &seqSource{idx: []int{2, 7}}
	kv := store.NewMemory()
	sel := NewSelector(kv, WithSource(src))

	assert.Equal(t, Default().Quotes[2], sel.Get(time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, Default().Quotes[7], sel.Get(time.Date(2026, time.October, 16, 0, 0, 1, 0, time.UTC)))

	raw, ok, err := kv.Load(store.KeyQuoteOfTheDay)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"date":"2026-10-16","text":"`+Default().Quotes[7]+`"}`, raw)
}

func TestGet_KeysOnUTCDay(t *testing.T) {
	src := &seqSource{idx: []int{3, 5}}
	kv := store.NewMemory()
	sel := NewSelector(kv, WithSource(src))

	tokyo := time.FixedZone("JST", 9*60*60)
	// 08:00 on the 16th in Tokyo is still the 15th in UTC.
	assert.Equal(t, Default().Quotes[3], sel.Get(time.Date(2026, time.October, 16, 8, 0, 0, 0, tokyo)))
	assert.Equal(t, Default().Quotes[3], sel.Get(time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, src.calls)

	raw, ok, err := kv.Load(store.KeyQuoteOfTheDay)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"date":"2026-10-15","text":"`+Default().Quotes[3]+`"}`, raw)
}

func TestGet_SurvivesNewSelector(t *testing.T) {
	kv := store.NewMemory()
	day := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

	first := NewSelector(kv, WithSource(&seqSource{idx: []int{4}})).Get(day)
	second := NewSelector(kv, WithSource(&seqSource{idx: []int{9}})).Get(day)
	assert.Equal(t, first, second)
}

func TestGet_CorruptCacheIsIgnored(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Save(store.KeyQuoteOfTheDay, "not-json"))

	sel := NewSelector(kv, WithSource(&seqSource{idx: []int{1}}))
	assert.Equal(t, Default().Quotes[1], sel.Get(time.Now()))
}

func TestParse_RejectsEmptySet(t *testing.T) {
	_, err := Parse([]byte("author: Nobody\nquotes: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("quotes: [unterminated"))
	assert.Error(t, err)
}

func TestWithSet(t *testing.T) {
	sel := NewSelector(store.NewMemory(), WithSet(Set{Author: "Me", Quotes: []string{"only one"}}))
	assert.Equal(t, "only one", sel.Random())
	assert.Equal(t, "Me", sel.Author())
}

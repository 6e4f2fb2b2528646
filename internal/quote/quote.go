// Package quote picks the motivational quote of the day.
package quote

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/theirongolddev/seventy/internal/store"

	"github.com/jinzhu/now"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var quotesYAML []byte

const dayLayout = "2006-01-02"

// Set is a fixed list of quotes by one author.
type Set struct {
	Author string   `yaml:"author"`
	Quotes []string `yaml:"quotes"`
}

// Parse decodes a YAML quote set.
func Parse(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("parsing quotes: %w", err)
	}
	if len(s.Quotes) == 0 {
		return Set{}, errors.New("quote set is empty")
	}
	return s, nil
}

var defaultSet = func() Set {
	s, err := Parse(quotesYAML)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return s
}()

// Default returns the built-in quote set.
func Default() Set {
	out := defaultSet
	out.Quotes = append([]string(nil), defaultSet.Quotes...)
	return out
}

// Source is the randomness the selector draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// cached is the stored form of the quote of the day.
type cached struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// Selector returns one quote per calendar day, remembered in the store.
type Selector struct {
	kv  store.KV
	set Set
	src Source
	log *zap.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithSource sets the random source.
func WithSource(src Source) Option {
	return func(s *Selector) { s.src = src }
}

// WithSet replaces the quote set.
func WithSet(set Set) Option {
	return func(s *Selector) { s.set = set }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Selector) { s.log = log }
}

// NewSelector returns a selector backed by kv.
func NewSelector(kv store.KV, opts ...Option) *Selector {
	s := &Selector{
		kv:  kv,
		set: defaultSet,
		src: globalSource{},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Author returns the attribution for the quote set.
func (s *Selector) Author() string {
	return s.set.Author
}

// Get returns the quote for the UTC calendar day containing today. Repeated
// calls on the same day return the same text.
func (s *Selector) Get(today time.Time) string {
	day := now.With(today.UTC()).BeginningOfDay().Format(dayLayout)

	if raw, ok, err := s.kv.Load(store.KeyQuoteOfTheDay); err != nil {
		s.log.Warn("loading quote of the day failed", zap.Error(err))
	} else if ok {
		var c cached
		if err := json.Unmarshal([]byte(raw), &c); err == nil && c.Date == day && c.Text != "" {
			return c.Text
		}
	}

	text := s.Random()
	data, _ := json.Marshal(cached{Date: day, Text: text})
	if err := s.kv.Save(store.KeyQuoteOfTheDay, string(data)); err != nil {
		s.log.Warn("saving quote of the day failed", zap.Error(err))
	}
	return text
}

// Random returns a quote without touching the daily cache.
func (s *Selector) Random() string {
	return s.set.Quotes[s.src.IntN(len(s.set.Quotes))]
}

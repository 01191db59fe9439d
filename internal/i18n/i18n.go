// Package i18n holds the UI locale preference as an explicit observable
// value. Components subscribe for changes instead of watching a global
// storage event.
package i18n

import "sync"

// Supported locales.
const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

// Store is a concurrency-safe locale value with change subscriptions.
type Store struct {
	mu     sync.RWMutex
	locale string
	subs   map[int]func(string)
	nextID int
}

// Supported reports whether the locale is one the UI ships strings for.
func Supported(locale string) bool {
	return locale == LocaleRU || locale == LocaleEN
}

// NewStore creates a store initialized to the given locale. Unknown locales
// fall back to Russian.
func NewStore(locale string) *Store {
	if !Supported(locale) {
		locale = LocaleRU
	}
	return &Store{
		locale: locale,
		subs:   map[int]func(string){},
	}
}

// Get returns the current locale.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Set switches the locale and notifies subscribers. Setting the current
// locale or an unsupported one is a no-op.
func (s *Store) Set(locale string) {
	if !Supported(locale) {
		return
	}

	s.mu.Lock()
	if locale == s.locale {
		s.mu.Unlock()
		return
	}
	s.locale = locale
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(locale)
	}
}

// Subscribe registers fn to run on every locale change and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(locale string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

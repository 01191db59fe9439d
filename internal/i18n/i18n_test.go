package i18n

import "testing"

func TestDefaultFallback(t *testing.T) {
	s := NewStore("de")
	if s.Get() != LocaleRU {
		t.Errorf("expected fallback to ru, got %s", s.Get())
	}
}

func TestSubscribeNotified(t *testing.T) {
	s := NewStore(LocaleRU)

	var got string
	unsub := s.Subscribe(func(locale string) { got = locale })

	s.Set(LocaleEN)
	if got != LocaleEN {
		t.Errorf("expected subscriber to see en, got %q", got)
	}

	// Same locale again must not re-notify.
	got = ""
	s.Set(LocaleEN)
	if got != "" {
		t.Error("expected no notification for unchanged locale")
	}

	unsub()
	s.Set(LocaleRU)
	if got != "" {
		t.Error("expected no notification after unsubscribe")
	}
}

func TestUnsupportedLocaleIgnored(t *testing.T) {
	s := NewStore(LocaleEN)
	s.Set("fr")
	if s.Get() != LocaleEN {
		t.Errorf("expected locale unchanged, got %s", s.Get())
	}
}

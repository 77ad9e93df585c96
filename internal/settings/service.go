// Package settings manages the user's persisted display preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/ramonehamilton/ygo-catalog/internal/events"
	"github.com/ramonehamilton/ygo-catalog/internal/storage/repository"
)

// LanguageKey is the settings key holding the language preference.
const LanguageKey = "language"

// ErrUnsupportedLanguage is returned for tags that match no supported language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// SupportedLanguages lists the interface languages, in preference order.
var SupportedLanguages = []string{"zh", "en"}

var matcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// Normalize maps a BCP 47 tag such as "zh-Hans-CN" or "en_US" to one of
// SupportedLanguages.
func Normalize(tag string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty tag", ErrUnsupportedLanguage)
	}

	parsed, err := language.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}

	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}
	return SupportedLanguages[index], nil
}

// PreferenceStore persists JSON-encoded preferences by key.
// *repository.Preferences implements it.
type PreferenceStore interface {
	Load(ctx context.Context, key string, target any) error
	Store(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) (bool, error)
}

// Config configures a Service.
type Config struct {
	Repo            PreferenceStore
	Dispatcher      *events.EventDispatcher
	DefaultLanguage string
	Logger          *slog.Logger
}

// Service reads and writes the language preference.
type Service struct {
	repo       PreferenceStore
	dispatcher *events.EventDispatcher
	fallback   string
	logger     *slog.Logger

	mu sync.Mutex
}

// NewService creates a settings service. An invalid default language falls
// back to the first supported language.
func NewService(cfg Config) (*Service, error) {
	if cfg.Repo == nil {
		return nil, errors.New("settings repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	fallback, err := Normalize(cfg.DefaultLanguage)
	if err != nil {
		cfg.Logger.Warn("Ignoring unsupported default language", "language", cfg.DefaultLanguage)
		fallback = SupportedLanguages[0]
	}

	return &Service{
		repo:       cfg.Repo,
		dispatcher: cfg.Dispatcher,
		fallback:   fallback,
		logger:     cfg.Logger,
	}, nil
}

// Language returns the stored preference, or the default when none is stored.
func (s *Service) Language(ctx context.Context) (string, error) {
	var stored string
	err := s.repo.Load(ctx, LanguageKey, &stored)
	if errors.Is(err, repository.ErrSettingNotFound) {
		return s.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read language: %w", err)
	}

	lang, err := Normalize(stored)
	if err != nil {
		s.logger.Warn("Stored language is no longer supported", "language", stored)
		return s.fallback, nil
	}
	return lang, nil
}

// SetLanguage stores a new preference and returns the normalized value.
func (s *Service) SetLanguage(ctx context.Context, tag string) (string, error) {
	lang, err := Normalize(tag)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.Language(ctx)
	if err != nil {
		return "", err
	}
	if err := s.repo.Store(ctx, LanguageKey, lang); err != nil {
		return "", fmt.Errorf("failed to save language: %w", err)
	}

	s.logger.Info("Language preference saved", "language", lang, "previous", previous)
	s.notify(ctx, lang, previous)
	return lang, nil
}

// ResetLanguage forgets the stored preference and returns the default that
// now applies.
func (s *Service) ResetLanguage(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.Language(ctx)
	if err != nil {
		return "", err
	}
	removed, err := s.repo.Remove(ctx, LanguageKey)
	if err != nil {
		return "", fmt.Errorf("failed to reset language: %w", err)
	}

	if removed {
		s.logger.Info("Language preference reset", "language", s.fallback, "previous", previous)
	}
	s.notify(ctx, s.fallback, previous)
	return s.fallback, nil
}

func (s *Service) notify(ctx context.Context, lang, previous string) {
	if s.dispatcher == nil || previous == lang {
		return
	}
	s.dispatcher.Dispatch(events.NewTypedEvent(ctx, events.LanguageChanged, events.LanguageChangedEvent{
		Language: lang,
		Previous: previous,
	}))
}

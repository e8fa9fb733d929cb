package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var errNotInitialized = errors.New("i18n: bundle not initialized")

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init builds the bundle from the embedded en and id message files.
func Init() {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, f := range []string{"locales/active.en.json", "locales/active.id.json"} {
		if _, err := b.LoadMessageFileFS(locales, f); err != nil {
			panic(err)
		}
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
}

// Load merges an extra message file (for example a customized translation) into the bundle.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return errNotInitialized
	}
	_, err := bundle.LoadMessageFile(path)
	return err
}

// T localizes messageID for the given language tags. The message ID itself is
// returned when nothing matches so callers always have something to show.
func T(lang string, messageID string, data map[string]any) string {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil {
		Init()
		mu.RLock()
		b = bundle
		mu.RUnlock()
	}

	loc := goi18n.NewLocalizer(b, lang)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil && msg == "" {
		return messageID
	}
	return msg
}

package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// DefaultLocale is used when a requested locale has no bundle.
const DefaultLocale = "en"

var (
	// ErrMissingTranslation is returned when no bundle carries the key.
	ErrMissingTranslation = errors.New("i18n: missing translation")
	// ErrMissingTranslator signals that lookup ran without a translator.
	ErrMissingTranslator = errors.New("i18n: translator is not configured")
)

// Translator resolves a dotted key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// Catalog is a Translator backed by flattened YAML bundles, one per locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	bundles  map[string]map[string]string
}

// NewCatalog returns an empty catalog that falls back to the given locale.
func NewCatalog(fallback string) *Catalog {
	fallback = normaliseLocale(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	return &Catalog{
		fallback: fallback,
		bundles:  make(map[string]map[string]string),
	}
}

// Default returns a catalog loaded with the bundled en and zh messages.
func Default() (*Catalog, error) {
	catalog := NewCatalog(DefaultLocale)
	if err := catalog.LoadFS(embeddedLocales, "locales"); err != nil {
		return nil, err
	}
	return catalog, nil
}

// MustDefault is Default for init-time wiring.
func MustDefault() *Catalog {
	catalog, err := Default()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Load merges a YAML document into the bundle of locale. Nested maps are
// flattened into dotted keys.
func (c *Catalog) Load(locale string, data []byte) error {
	locale = normaliseLocale(locale)
	if locale == "" {
		return errors.New("i18n: locale is required")
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("i18n: decode %s bundle: %w", locale, err)
	}

	flat := make(map[string]string)
	flatten("", doc, flat)

	c.mu.Lock()
	defer c.mu.Unlock()
	bundle, ok := c.bundles[locale]
	if !ok {
		bundle = make(map[string]string, len(flat))
		c.bundles[locale] = bundle
	}
	for key, value := range flat {
		bundle[key] = value
	}
	return nil
}

// LoadFS loads every <locale>.yaml / <locale>.yml file found directly under
// dir.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if err := c.Load(strings.TrimSuffix(name, ext), data); err != nil {
			return err
		}
	}
	return nil
}

// Locales lists loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bundles))
	for locale := range c.bundles {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate resolves key for locale, trying the exact locale, its base
// language and then the fallback locale. Args are applied with fmt.Sprintf.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingTranslation
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(normaliseLocale(locale), c.fallback) {
		bundle, ok := c.bundles[candidate]
		if !ok {
			continue
		}
		msg, ok := bundle[key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(msg, args...), nil
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

func localeChain(locale, fallback string) []string {
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if idx := strings.IndexByte(locale, '-'); idx > 0 {
			chain = append(chain, locale[:idx])
		}
	}
	return append(chain, fallback)
}

func normaliseLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	locale = strings.ReplaceAll(locale, "_", "-")
	return strings.ToLower(locale)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case string:
			out[full] = v
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

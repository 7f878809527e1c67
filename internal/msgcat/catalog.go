package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

//go:embed messages.*.yaml
var defaultFiles embed.FS

var ErrUnknownLocale = errors.New("unknown locale")

// Catalog holds message templates keyed by their flattened dot path, e.g. "game.win".
type Catalog struct {
	mu   sync.RWMutex
	data map[string]string
}

// New - loads the embedded messages of the locale and applies the overrides found in overrideDir.
func New(locale, overrideDir string) (*Catalog, error) {
	that := &Catalog{data: make(map[string]string)}

	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}

	if err := that.loadEmbedded(DefaultLocale); err != nil {
		return nil, err
	}

	if locale != DefaultLocale {
		if err := that.loadEmbedded(locale); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(overrideDir) != "" {
		if err := that.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}

	return that, nil
}

func (that *Catalog) loadEmbedded(locale string) error {
	raw, err := fs.ReadFile(defaultFiles, "messages."+locale+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	if err != nil {
		return fmt.Errorf("read embedded messages: %w", err)
	}

	return that.applyYAML(raw)
}

func (that *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read messages dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	seen := make(map[string]string)
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		flat, err := parseYAMLToFlat(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		for key := range flat {
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("duplicate override key %q in %s and %s", key, prev, name)
			}
			seen[key] = name
		}

		that.merge(flat)
	}

	return nil
}

func (that *Catalog) applyYAML(raw []byte) error {
	flat, err := parseYAMLToFlat(raw)
	if err != nil {
		return err
	}

	that.merge(flat)
	return nil
}

func (that *Catalog) merge(flat map[string]string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for key, value := range flat {
		that.data[key] = value
	}
}

func parseYAMLToFlat(raw []byte) (map[string]string, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}

	flat := make(map[string]string)
	if err := flatten(tree, "", flat); err != nil {
		return nil, err
	}

	return flat, nil
}

func flatten(src any, prefix string, out map[string]string) error {
	switch value := src.(type) {
	case map[string]any:
		for key, child := range value {
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(child, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return errors.New("string value without key")
		}
		out[prefix] = value
		return nil
	case nil:
		return nil
	default:
		// only string leaves are templates
		return fmt.Errorf("unsupported value at %s: %T", prefix, value)
	}
}

// Render - executes the template stored under key. Missing data keys are errors.
func (that *Catalog) Render(key string, data any) (string, error) {
	that.mu.RLock()
	text, ok := that.data[key]
	that.mu.RUnlock()

	if !ok || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", apperror.ErrMessageMissing, key)
	}

	tpl, err := template.New(key).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", key, err)
	}

	var b strings.Builder
	if err = tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", key, err)
	}

	return b.String(), nil
}

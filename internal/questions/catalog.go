package questions

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Placeholders understood by Catalog.Render.
const (
	KeyPlaceholder     = "{key}"
	SectionPlaceholder = "{section}"
)

// Catalog is the fixed list of question templates for one language profile.
type Catalog struct {
	Language  string   `yaml:"language"`
	Templates []string `yaml:"templates"`
}

var (
	catalogsOnce sync.Once
	catalogs     map[string]*Catalog
	catalogsErr  error
)

func builtinCatalogs() (map[string]*Catalog, error) {
	catalogsOnce.Do(func() {
		catalogs, catalogsErr = loadCatalogs(catalogFS, "catalogs")
	})
	return catalogs, catalogsErr
}

// loadCatalogs reads every *.yaml file in dir and indexes it by language.
func loadCatalogs(fsys fs.FS, dir string) (map[string]*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	out := make(map[string]*Catalog)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", e.Name(), err)
		}
		var c Catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", e.Name(), err)
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name(), err)
		}
		lang := normalizeLanguage(c.Language)
		if _, dup := out[lang]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate language %q", e.Name(), lang)
		}
		c.Language = lang
		out[lang] = &c
	}
	return out, nil
}

func (c *Catalog) validate() error {
	if strings.TrimSpace(c.Language) == "" {
		return fmt.Errorf("language is required")
	}
	if len(c.Templates) < QuestionsPerKey {
		return fmt.Errorf("need at least %d templates, got %d", QuestionsPerKey, len(c.Templates))
	}
	for i, t := range c.Templates {
		if !strings.Contains(t, KeyPlaceholder) {
			return fmt.Errorf("template %d has no %s placeholder", i, KeyPlaceholder)
		}
	}
	return nil
}

// CatalogFor returns the template catalog for a language profile. The
// profile name must match exactly.
func CatalogFor(language string) (*Catalog, error) {
	all, err := builtinCatalogs()
	if err != nil {
		return nil, err
	}
	c, ok := all[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return c, nil
}

// Languages lists the available language profiles in sorted order.
func Languages() []string {
	all, err := builtinCatalogs()
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(all))
	for l := range all {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Render substitutes key and the lower-cased section title into every
// template, in catalog order.
func (c *Catalog) Render(key, sectionTitle string) []string {
	r := strings.NewReplacer(
		KeyPlaceholder, key,
		SectionPlaceholder, strings.ToLower(sectionTitle),
	)
	out := make([]string, len(c.Templates))
	for i, t := range c.Templates {
		out[i] = tidy(r.Replace(t))
	}
	return out
}

// tidy collapses the whitespace left behind by an empty section title.
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ?", "?")
	s = strings.ReplaceAll(s, " .", ".")
	return s
}

func normalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

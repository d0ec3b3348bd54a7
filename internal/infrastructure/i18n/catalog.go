package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is used when a requested locale has no catalog.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog holds the notification texts of every locale.
type Catalog struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	keys    map[string]map[string]bool
}

// LoadEmbedded loads the catalogs shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		keys:    map[string]map[string]bool{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.keys[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	locales := make([]string, 0, len(c.keys))
	for locale := range c.keys {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	c.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range locales {
		if locale != BaseLocale {
			c.tags = append(c.tags, language.MustParse(locale))
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	if strings.TrimSpace(file.Locale) != dirLocale {
		return fmt.Errorf("catalog %s: locale %q must match directory %q", p, file.Locale, dirLocale)
	}
	if file.Namespace == "" || file.Namespace != strings.TrimSuffix(path.Base(p), path.Ext(p)) {
		return fmt.Errorf("catalog %s: namespace %q must match file name", p, file.Namespace)
	}
	tag, err := language.Parse(dirLocale)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", p, err)
	}
	seen, ok := c.keys[dirLocale]
	if !ok {
		seen = map[string]bool{}
		c.keys[dirLocale] = seen
	}
	for key, text := range file.Messages {
		if seen[key] {
			return fmt.Errorf("catalog %s: duplicate key %q", p, key)
		}
		seen[key] = true
		if err := c.builder.SetString(tag, key, text); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", p, key, err)
		}
	}
	return nil
}

// Match returns the supported locale closest to the requested one.
func (c *Catalog) Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return c.tags[0]
	}
	_, index, _ := c.matcher.Match(tag)
	return c.tags[index]
}

// Printer returns a printer for the locale closest to the requested one.
func (c *Catalog) Printer(locale string) *message.Printer {
	return message.NewPrinter(c.Match(locale), message.Catalog(c.builder))
}

// Render formats key with args in the given locale. Unknown keys are
// returned unchanged.
func (c *Catalog) Render(locale, key string, args ...any) string {
	return c.Printer(locale).Sprintf(key, args...)
}

// Has reports whether locale defines key.
func (c *Catalog) Has(locale, key string) bool {
	return c.keys[locale][key]
}

// Locales lists the loaded locales, base locale first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

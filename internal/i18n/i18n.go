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

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog must cover.
const BaseLocale = "en"

// Key identifies one message in the catalogs.
type Key string

// Message keys shared by every locale.
const (
	ItemLabel          Key = "item.label"
	ItemAdded          Key = "bag.item_added"
	BagFull            Key = "bag.full"
	MandatoryComplete  Key = "bag.mandatory_complete"
	MandatoryMissing   Key = "bag.mandatory_missing"
	ItemRemoved        Key = "bag.item_removed"
	ItemNotFound       Key = "bag.item_not_found"
	StatusItemsPacked  Key = "status.items_packed"
	StatusMandatory    Key = "status.mandatory_present"
	StatusTierComplete Key = "status.tier_complete"
	StatusTierNone     Key = "status.tier_none"
	StatusTierPartial  Key = "status.tier_partial"
	StudentRoster      Key = "student.roster"
	StudentTotalWeight Key = "student.total_weight"
	ExportComplete     Key = "export.complete"
	ExportOpened       Key = "export.opened"
	ExportOpenFailed   Key = "export.open_failed"
	InspectHeader      Key = "inspect.header"
)

var (
	// ErrUnknownLocale is returned when no catalog matches the requested locale.
	ErrUnknownLocale = errors.New("unknown locale")
	// ErrIncompleteLocale is returned when a catalog lacks keys defined by the base locale.
	ErrIncompleteLocale = errors.New("locale catalog is incomplete")
)

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale registered into one x/text catalog.
type Bundle struct {
	builder *catalog.Builder
	locales map[string]language.Tag
}

var embedded = sync.OnceValues(func() (*Bundle, error) {
	return LoadFromFS(localesFS)
})

// Catalog renders messages for a single locale.
type Catalog struct {
	locale  string
	printer *message.Printer
}

// LoadFromFS reads locales/*.yaml from fsys and validates them against the base locale.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	files := make(map[string]catalogFile, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages are required", p)
		}
		files[locale] = file
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	bundle := &Bundle{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		locales: make(map[string]language.Tag, len(files)),
	}
	for locale, file := range files {
		for key := range base.Messages {
			if _, ok := file.Messages[key]; !ok {
				return nil, fmt.Errorf("%w: %s is missing %q", ErrIncompleteLocale, locale, key)
			}
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for key, value := range file.Messages {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("catalog %s: message key cannot be blank", locale)
			}
			if err := bundle.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
		bundle.locales[locale] = tag
	}
	return bundle, nil
}

// Locales returns the sorted locale identifiers available in the bundle.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Catalog returns a renderer for locale. Region subtags fall back to their base language.
func (b *Bundle) Catalog(locale string) (*Catalog, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	lang, _ := tag.Base()
	supported, ok := b.locales[lang.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return &Catalog{
		locale:  lang.String(),
		printer: message.NewPrinter(supported, message.Catalog(b.builder)),
	}, nil
}

// Load returns a catalog for locale from the embedded message files.
func Load(locale string) (*Catalog, error) {
	bundle, err := embedded()
	if err != nil {
		return nil, err
	}
	return bundle.Catalog(locale)
}

// English returns the base locale catalog.
func English() *Catalog {
	c, err := Load(BaseLocale)
	if err != nil {
		panic(fmt.Sprintf("load embedded %s catalog: %v", BaseLocale, err))
	}
	return c
}

// Locale reports the language the catalog renders.
func (c *Catalog) Locale() string {
	return c.locale
}

// Text formats the message stored under key with args. Catalog messages use
// only %s verbs; callers format numbers themselves to avoid locale digit grouping.
func (c *Catalog) Text(key Key, args ...any) string {
	return c.printer.Sprintf(string(key), args...)
}

// Package i18n renders user-facing error messages. Templates live in the
// "errors" namespace of the embedded message bundle and are parsed once per
// locale.
package i18n

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/catapult/internal/platform/i18n/catalog"
)

// Code is an error code string. The errors package owns the typed codes.
type Code = string

const namespace = "errors"

// Catalog holds the parsed error templates of one locale.
type Catalog struct {
	locale    string
	source    map[Code]string
	templates map[Code]*template.Template
}

// catalogs caches catalogs by requested and resolved locale.
var catalogs sync.Map

// GetCatalog returns the catalog for locale, falling back through the bundle's
// locale chain to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if cached, ok := catalogs.Load(requested); ok {
		return cached.(*Catalog)
	}

	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, namespace)
	cached, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	cat := cached.(*Catalog)
	catalogs.Store(requested, cat)
	return cat
}

// NewCatalog parses messages into a catalog. A template that does not parse
// is kept as literal text.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cat := &Catalog{
		locale:    locale,
		source:    make(map[Code]string, len(messages)),
		templates: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		cat.source[code] = text
		tmpl, err := template.New(code).Option("missingkey=zero").Parse(text)
		if err != nil {
			continue
		}
		cat.templates[code] = tmpl
	}
	return cat
}

// Locale returns the locale the catalog resolved to.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render as
// the code itself; a broken template renders its source text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.source[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return text
	}
	return buf.String()
}

func (c *Catalog) codes() []Code {
	out := make([]Code, 0, len(c.source))
	for code := range c.source {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

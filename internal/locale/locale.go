// Package locale resolves localized text and region display names for a
// requested locale. Every lookup degrades to a caller-supplied fallback; no
// function in this package returns an error.
package locale

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLocale is used when no preference has been stored.
const DefaultLocale = "hu-HU"

// fallbackChain lists the languages tried after the requested one.
var fallbackChain = []string{"en", "hu"}

// FallbackChain returns the languages tried, in order, after the requested
// one.
func FallbackChain() []string {
	return append([]string(nil), fallbackChain...)
}

// marketRegions overrides the market → region mapping for markets whose
// code is not an ISO 3166 region. "001" is the UN M.49 code for "World".
var marketRegions = map[string]string{
	"uk":   "GB",
	"net":  "001",
	"beta": "001",
}

// Resolver resolves text for one locale. The zero value resolves as if the
// locale were empty, which falls straight through to the fallback chain.
type Resolver struct {
	locale string
	lang   string
	tag    language.Tag
}

// New returns a Resolver for locale (e.g. "en-US", "hu_HU", "de").
func New(locale string) Resolver {
	locale = strings.TrimSpace(locale)
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		tag = language.Und
	}
	return Resolver{locale: locale, lang: PrimarySubtag(locale), tag: tag}
}

// Locale returns the locale string the resolver was built with.
func (r Resolver) Locale() string { return r.locale }

// Lang returns the lowercased primary language subtag.
func (r Resolver) Lang() string { return r.lang }

// Tag returns the parsed BCP 47 tag, or language.Und if the locale did not parse.
func (r Resolver) Tag() language.Tag { return r.tag }

// PrimarySubtag returns the lowercased primary subtag: "en-US" → "en".
func PrimarySubtag(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}

// PickText resolves text for the active language, then English, then
// Hungarian, then fallback. Empty entries are treated as missing.
func (r Resolver) PickText(text map[string]string, fallback string) string {
	if len(text) == 0 {
		return fallback
	}
	if r.lang != "" {
		if v := text[r.lang]; v != "" {
			return v
		}
	}
	for _, lang := range fallbackChain {
		if v := text[lang]; v != "" {
			return v
		}
	}
	return fallback
}

// RegionCode maps a market code to the region code used for display names.
func RegionCode(market string) string {
	market = strings.TrimSpace(market)
	if code, ok := marketRegions[strings.ToLower(market)]; ok {
		return code
	}
	return strings.ToUpper(market)
}

// RegionName returns the display name of market's region in the resolver's
// language, or fallback if the locale or region has no data.
func (r Resolver) RegionName(market, fallback string) (name string) {
	defer func() {
		if recover() != nil {
			name = fallback
		}
	}()

	if r.tag == language.Und {
		return fallback
	}
	region, err := language.ParseRegion(RegionCode(market))
	if err != nil {
		return fallback
	}
	namer := display.Regions(r.tag)
	if namer == nil {
		return fallback
	}
	if n := namer.Name(region); n != "" {
		return n
	}
	return fallback
}

// Collator returns a collator for the resolver's locale. Collators are not
// safe for concurrent use; callers should create one per sort.
func (r Resolver) Collator() *collate.Collator {
	return collate.New(r.tag)
}

// Compare orders a and b using locale-aware collation.
func (r Resolver) Compare(a, b string) int {
	return r.Collator().CompareString(a, b)
}

// Package messages resolves validation error codes to human-readable text.
//
// Bundles are flat TOML tables keyed by message code, one file per locale
// named errors.<locale>.toml. Codes are tried in order; {0}, {1}, ...
// placeholders are replaced by the error arguments, with integers rendered
// using the locale's digit grouping (1000000 -> "1,000,000").
package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed bundles/*.toml
var bundleFS embed.FS

const bundlePrefix = "errors."

// Resolvable is anything that can be turned into a message: validation
// errors and message arguments such as field display names.
type Resolvable interface {
	Codes() []string
	Arguments() []any
	DefaultMessage() string
}

// Source holds the loaded bundles and negotiates locales.
type Source struct {
	defaultTag language.Tag
	tags       []language.Tag // tags[0] is the default
	bundles    map[language.Tag]map[string]string
	matcher    language.Matcher
}

// NewSource loads the bundles shipped with the binary.
func NewSource(defaultLocale string) (*Source, error) {
	sub, err := fs.Sub(bundleFS, "bundles")
	if err != nil {
		return nil, fmt.Errorf("messages: open embedded bundles: %w", err)
	}
	return LoadFS(sub, defaultLocale)
}

// LoadFS loads every errors.<locale>.toml file at the root of fsys.
// The default locale bundle must exist.
func LoadFS(fsys fs.FS, defaultLocale string) (*Source, error) {
	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("messages: parse default locale %q: %w", defaultLocale, err)
	}

	files, err := fs.Glob(fsys, bundlePrefix+"*.toml")
	if err != nil {
		return nil, fmt.Errorf("messages: list bundles: %w", err)
	}

	bundles := make(map[language.Tag]map[string]string, len(files))
	for _, name := range files {
		locale := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), bundlePrefix), ".toml")
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("messages: bundle %s: parse locale: %w", name, err)
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("messages: read %s: %w", name, err)
		}
		entries := make(map[string]string)
		if _, err := toml.Decode(string(data), &entries); err != nil {
			return nil, fmt.Errorf("messages: decode %s: %w", name, err)
		}
		bundles[tag] = entries
	}

	if _, ok := bundles[defaultTag]; !ok {
		return nil, fmt.Errorf("messages: default locale %q has no bundle", defaultLocale)
	}

	tags := []language.Tag{defaultTag}
	for tag := range bundles {
		if tag != defaultTag {
			tags = append(tags, tag)
		}
	}

	return &Source{
		defaultTag: defaultTag,
		tags:       tags,
		bundles:    bundles,
		matcher:    language.NewMatcher(tags),
	}, nil
}

// DefaultLocale returns the fallback locale.
func (s *Source) DefaultLocale() language.Tag {
	return s.defaultTag
}

// Locale picks the best bundle for an Accept-Language header value.
// An empty or unmatched header yields the default locale.
func (s *Source) Locale(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return s.defaultTag
	}
	_, idx := language.MatchStrings(s.matcher, acceptLanguage)
	return s.tags[idx]
}

// Lookup resolves a single code with arguments. It reports false when the
// code exists neither in the locale bundle nor in the default bundle.
func (s *Source) Lookup(code string, args []any, tag language.Tag) (string, bool) {
	pattern, ok := s.pattern(code, tag)
	if !ok {
		return "", false
	}
	return s.format(pattern, args, tag), true
}

// Message resolves res: the first code found wins, then the default message,
// then the last code verbatim.
func (s *Source) Message(res Resolvable, tag language.Tag) string {
	for _, code := range res.Codes() {
		if msg, ok := s.Lookup(code, res.Arguments(), tag); ok {
			return msg
		}
	}
	if def := res.DefaultMessage(); def != "" {
		return s.format(def, res.Arguments(), tag)
	}
	if codes := res.Codes(); len(codes) > 0 {
		return codes[len(codes)-1]
	}
	return ""
}

func (s *Source) pattern(code string, tag language.Tag) (string, bool) {
	if b, ok := s.bundles[tag]; ok {
		if p, ok := b[code]; ok {
			return p, true
		}
	}
	p, ok := s.bundles[s.defaultTag][code]
	return p, ok
}

func (s *Source) format(pattern string, args []any, tag language.Tag) string {
	if len(args) == 0 || !strings.Contains(pattern, "{") {
		return pattern
	}
	printer := message.NewPrinter(tag)
	oldnew := make([]string, 0, len(args)*2)
	for i, arg := range args {
		oldnew = append(oldnew, "{"+strconv.Itoa(i)+"}", s.formatArg(printer, arg, tag))
	}
	return strings.NewReplacer(oldnew...).Replace(pattern)
}

func (s *Source) formatArg(p *message.Printer, arg any, tag language.Tag) string {
	if res, ok := arg.(Resolvable); ok {
		return s.Message(res, tag)
	}
	switch reflect.ValueOf(arg).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return p.Sprintf("%d", arg)
	default:
		return fmt.Sprint(arg)
	}
}

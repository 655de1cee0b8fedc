package gazetteer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/dictionary.toml
var defaultDictionary []byte

const (
	groupSeparator    = " | "
	tokenSeparator    = ", "
	labelGroupDivider = ";"
)

// Dictionary maps place tokens to their translations. Country entries are
// consulted before city entries. A Dictionary is immutable once built and
// safe for concurrent use.
type Dictionary struct {
	countries map[string]string
	cities    map[string]string
}

type dictionaryFile struct {
	Countries map[string]string `toml:"countries"`
	Cities    map[string]string `toml:"cities"`
}

// New builds a dictionary from the given maps. Keys are NFC-normalized and
// trimmed so lookups match regardless of the composition form of the input.
func New(countries, cities map[string]string) *Dictionary {
	return &Dictionary{
		countries: normalizeKeys(countries),
		cities:    normalizeKeys(cities),
	}
}

// Default returns the embedded dictionary.
func Default() (*Dictionary, error) {
	return Decode(defaultDictionary)
}

// Load reads a dictionary file. An empty path returns the embedded default.
func Load(path string) (*Dictionary, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	dict, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dict, nil
}

// Decode parses dictionary TOML with [countries] and [cities] tables.
func Decode(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	return New(file.Countries, file.Cities), nil
}

// Size returns the number of country and city entries.
func (d *Dictionary) Size() (countries, cities int) {
	return len(d.countries), len(d.cities)
}

// Lookup translates a single token.
func (d *Dictionary) Lookup(token string) (string, bool) {
	key := normalizeToken(token)
	if key == "" {
		return "", false
	}
	if value, ok := d.countries[key]; ok {
		return value, true
	}
	if value, ok := d.cities[key]; ok {
		return value, true
	}
	return "", false
}

// Translate rewrites a label such as "США: Нью-Йорк; Канада: Торонто" into
// "USA, New York | Canada, Toronto". Groups split on ";" and tokens on ":" or
// "/". Lookups compare NFC forms; unknown tokens pass through trimmed but
// otherwise unchanged. Empty tokens and groups are skipped.
func (d *Dictionary) Translate(label string) string {
	var groups []string
	for _, group := range strings.Split(label, labelGroupDivider) {
		tokens := strings.FieldsFunc(group, isTokenSeparator)
		translated := make([]string, 0, len(tokens))
		for _, token := range tokens {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if value, ok := d.Lookup(token); ok {
				token = value
			}
			translated = append(translated, token)
		}
		if len(translated) == 0 {
			continue
		}
		groups = append(groups, strings.Join(translated, tokenSeparator))
	}
	return strings.Join(groups, groupSeparator)
}

func isTokenSeparator(r rune) bool {
	return r == ':' || r == '/'
}

func normalizeToken(token string) string {
	return strings.TrimSpace(norm.NFC.String(token))
}

func normalizeKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		key = normalizeToken(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

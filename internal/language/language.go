package language

import (
	"fmt"
	"strings"
)

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2/T
	alt3    string   // ISO 639-2/B when it differs ("fre" vs "fra")
	display string   // English name
	words   []string // lowercase English and native names
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"ru", "rus", "", "Russian", []string{"russian", "русский"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian", "українська"}},
	{"be", "bel", "", "Belarusian", []string{"belarusian", "беларуская"}},
	{"kk", "kaz", "", "Kazakh", []string{"kazakh", "қазақ"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch"}},
	{"fr", "fra", "fre", "French", []string{"french", "français"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "español"}},
	{"it", "ita", "", "Italian", []string{"italian", "italiano"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese", "português"}},
	{"pl", "pol", "", "Polish", []string{"polish", "polski"}},
	{"tr", "tur", "", "Turkish", []string{"turkish", "türkçe"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "中文"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese", "日本語"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return byWord[code]
}

// ToISO2 converts a recognized code or name to ISO 639-1. Unknown two-letter
// codes pass through lowercased; anything else unknown returns "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns the English name for a recognized code, or the
// uppercased input otherwise.
func DisplayName(code string) string {
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// AcceptLanguage normalizes a comma-separated preference list such as
// "Russian, eng" into "ru,en". Duplicates keep their first position.
func AcceptLanguage(value string) (string, error) {
	var codes []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code := ToISO2(part)
		if code == "" {
			return "", fmt.Errorf("unknown language %q", part)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return strings.Join(codes, ","), nil
}

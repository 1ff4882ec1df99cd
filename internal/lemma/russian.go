package lemma

import "strings"

// NormalizeRussian reduces a single Russian word to its dictionary form:
// verbs to the infinitive, adjectives and participles to masculine singular
// nominative, plural nouns to the singular. Multi-word phrases are returned
// trimmed but otherwise untouched, since the analysis agents already emit
// phrases in dictionary form and agreement inside a phrase must not be
// broken by per-word normalisation.
//
// Participles deliberately stay participles: "нарушающая" becomes
// "нарушающий", not the infinitive "нарушать".
func NormalizeRussian(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	if strings.ContainsRune(trimmed, ' ') {
		return trimmed
	}

	word := strings.ToLower(trimmed)

	if norm, ok := normalizeReflexiveVerb(word); ok {
		return norm
	}
	if norm, ok := normalizeParticiple(word); ok {
		return norm
	}
	if norm, ok := normalizeAdjective(word); ok {
		return norm
	}
	if norm, ok := normalizePluralNoun(word); ok {
		return norm
	}

	return word
}

// reflexiveVerbSuffixes maps inflected reflexive endings to the infinitive
// ending. Tried longest-first.
var reflexiveVerbSuffixes = []struct{ from, to string }{
	{"ивались", "иваться"},
	{"овались", "оваться"},
	{"ировались", "ироваться"},
	{"ялись", "яться"},
	{"ились", "иться"},
	{"ались", "аться"},
	{"лись", "ться"},
	{"илась", "иться"},
	{"алась", "аться"},
	{"лась", "ться"},
	{"илось", "иться"},
	{"лось", "ться"},
	{"ился", "иться"},
	{"ался", "аться"},
	{"лся", "ться"},
	{"ается", "аться"},
	{"яется", "яться"},
	{"ется", "ться"},
	{"ится", "иться"},
	{"аются", "аться"},
	{"яются", "яться"},
	{"ются", "ться"},
	{"атся", "аться"},
	{"ятся", "иться"},
}

func normalizeReflexiveVerb(word string) (string, bool) {
	for _, s := range reflexiveVerbSuffixes {
		if strings.HasSuffix(word, s.from) && len(word) > len(s.from)+2 {
			return strings.TrimSuffix(word, s.from) + s.to, true
		}
	}
	return "", false
}

// participleMarkers are stem fragments that identify active/passive
// participles and deverbal adjectives.
var participleMarkers = []string{"ющ", "ащ", "ящ", "ущ", "вш", "ённ", "енн", "анн", "нн"}

// inflectedAdjectiveEndings are non-masculine-nominative endings replaced
// with "ий"/"ый". Longest-first.
var inflectedAdjectiveEndings = []string{
	"ими", "ыми", "ого", "его", "ому", "ему",
	"ие", "ые", "ая", "яя", "ое", "ее", "их", "ых", "ую", "юю",
	"им", "ым", "ом", "ем", "ой", "ей",
}

func normalizeParticiple(word string) (string, bool) {
	marked := false
	for _, m := range participleMarkers {
		if strings.Contains(word, m) {
			marked = true
			break
		}
	}
	if !marked {
		return "", false
	}

	for _, ending := range inflectedAdjectiveEndings {
		if strings.HasSuffix(word, ending) && len(word) > len(ending)+3 {
			stem := strings.TrimSuffix(word, ending)
			return stem + participleEnding(stem), true
		}
	}
	return "", false
}

// adjectiveStemSuffixes gate the generic adjective rule so that plain nouns
// ("собака", "книга") are not reshaped into pseudo-adjectives.
var adjectiveStemSuffixes = []string{"льн", "тельн", "ческ", "ск", "ичн", "ов", "ев", "н"}

func normalizeAdjective(word string) (string, bool) {
	for _, ending := range inflectedAdjectiveEndings {
		if !strings.HasSuffix(word, ending) || len(word) <= len(ending)+3 {
			continue
		}
		stem := strings.TrimSuffix(word, ending)
		for _, s := range adjectiveStemSuffixes {
			if strings.HasSuffix(stem, s) {
				return stem + participleEnding(stem), true
			}
		}
	}
	return "", false
}

// participleEnding picks the masculine nominative ending the stem requires:
// "ий" after husher/velar stems, "ый" otherwise.
func participleEnding(stem string) string {
	for _, soft := range []string{"щ", "ш", "ж", "ч", "г", "к", "х"} {
		if strings.HasSuffix(stem, soft) {
			return "ий"
		}
	}
	return "ый"
}

func normalizePluralNoun(word string) (string, bool) {
	runes := []rune(word)
	n := len(runes)
	if n < 4 {
		return "", false
	}

	switch runes[n-1] {
	case 'и':
		// книги -> книга, словари -> словарь
		prev := runes[n-2]
		if strings.ContainsRune("гкхжчшщ", prev) {
			return string(runes[:n-1]) + "а", true
		}
		return string(runes[:n-1]) + "ь", true
	case 'ы':
		// столы -> стол
		return string(runes[:n-1]), true
	}
	return "", false
}

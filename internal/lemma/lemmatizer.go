// Package lemma normalises English and Russian surface forms to dictionary
// lemmas. The English lemmatiser drives candidate-highlight canonicalisation;
// the Russian normaliser is reserved for future ranking of translations.
//
// Both are pure rule-based functions: an irregular-form table plus suffix
// rules. They never error and always preserve the token count of the input.
package lemma

import "strings"

// Lemmatize converts an English word or phrase to its dictionary form.
// Each whitespace-separated token is lemmatised independently and the result
// is joined with single spaces. Blank input is returned unchanged.
func Lemmatize(text string) string {
	lemma, _ := LemmatizeWithPOS(text)
	return lemma
}

// LemmatizeWithPOS lemmatises like Lemmatize and additionally reports whether
// the first token is a participle form (past participle or gerund). Participle
// tokens are kept as lowercase surface forms rather than reduced to the verb
// base: "embroiled" stays "embroiled", while "gave up" becomes "give up".
//
// The flag lets callers keep an English participle highlight aligned with its
// Russian participle translation instead of collapsing both to verb bases.
func LemmatizeWithPOS(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return text, false
	}

	tokens := strings.Fields(text)
	lemmas := make([]string, len(tokens))
	isParticiple := false

	for i, token := range tokens {
		lemma, participle := lemmatizeToken(token)
		lemmas[i] = lemma
		if i == 0 && participle {
			isParticiple = true
		}
	}

	return strings.Join(lemmas, " "), isParticiple
}

func lemmatizeToken(token string) (string, bool) {
	word := strings.ToLower(token)

	if irregularParticiples[word] {
		return word, true
	}
	if base, ok := irregularVerbs[word]; ok {
		return base, false
	}
	if base, ok := irregularNouns[word]; ok {
		return base, false
	}
	if base, ok := irregularAdjectives[word]; ok {
		return base, false
	}

	// Regular participle forms are preserved as surface forms.
	if len(word) > 5 && strings.HasSuffix(word, "ing") {
		return word, true
	}
	if len(word) > 4 && strings.HasSuffix(word, "ed") {
		return word, true
	}

	if base, ok := stripComparative(word); ok {
		return base, false
	}
	return stripPluralSuffix(word), false
}

// stripComparative reduces -er/-est forms of known gradable adjectives.
func stripComparative(word string) (string, bool) {
	var stem string
	switch {
	case strings.HasSuffix(word, "est"):
		stem = word[:len(word)-3]
	case strings.HasSuffix(word, "er"):
		stem = word[:len(word)-2]
	default:
		return "", false
	}

	if gradableAdjectives[stem] {
		return stem, true
	}
	// Doubled final consonant: bigger -> bigg -> big.
	if n := len(stem); n >= 2 && stem[n-1] == stem[n-2] && gradableAdjectives[stem[:n-1]] {
		return stem[:n-1], true
	}
	// Dropped final e: larger -> larg -> large.
	if gradableAdjectives[stem+"e"] {
		return stem + "e", true
	}
	// y -> i shift: happier -> happi -> happy.
	if strings.HasSuffix(stem, "i") && gradableAdjectives[stem[:len(stem)-1]+"y"] {
		return stem[:len(stem)-1] + "y", true
	}

	return "", false
}

func stripPluralSuffix(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && hasSibilantPlural(word):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "s") &&
		!strings.HasSuffix(word, "ss") &&
		!strings.HasSuffix(word, "us") &&
		!strings.HasSuffix(word, "is"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// hasSibilantPlural reports an -es plural after a sibilant stem:
// boxes, matches, bushes, buzzes.
func hasSibilantPlural(word string) bool {
	if !strings.HasSuffix(word, "es") {
		return false
	}
	stem := word[:len(word)-2]
	return strings.HasSuffix(stem, "s") ||
		strings.HasSuffix(stem, "x") ||
		strings.HasSuffix(stem, "z") ||
		strings.HasSuffix(stem, "ch") ||
		strings.HasSuffix(stem, "sh")
}

// irregularParticiples are past-participle forms kept as surface forms.
var irregularParticiples = map[string]bool{
	"been": true, "begun": true, "bitten": true, "blown": true, "broken": true,
	"built": true, "bought": true, "caught": true, "chosen": true, "done": true,
	"drawn": true, "driven": true, "drunk": true, "eaten": true, "fallen": true,
	"flown": true, "forgotten": true, "frozen": true, "given": true, "gone": true,
	"grown": true, "hidden": true, "known": true, "lain": true, "mistaken": true,
	"ridden": true, "risen": true, "seen": true, "shaken": true, "shown": true,
	"spoken": true, "stolen": true, "sung": true, "sworn": true, "taken": true,
	"thrown": true, "torn": true, "woken": true, "worn": true, "written": true,
}

// irregularVerbs maps simple-past and third-person forms to the verb base.
var irregularVerbs = map[string]string{
	"am": "be", "are": "be", "is": "be", "was": "be", "were": "be",
	"ate": "eat", "became": "become", "began": "begin", "bent": "bend",
	"bit": "bite", "blew": "blow", "bought": "buy", "brought": "bring",
	"broke": "break", "came": "come", "caught": "catch", "chose": "choose",
	"did": "do", "does": "do", "drank": "drink", "drew": "draw",
	"drove": "drive", "fell": "fall", "felt": "feel", "flew": "fly",
	"forgot": "forget", "found": "find", "froze": "freeze", "gave": "give",
	"goes": "go", "got": "get", "grew": "grow", "had": "have", "has": "have",
	"heard": "hear", "held": "hold", "hid": "hide", "kept": "keep",
	"knew": "know", "lay": "lie", "led": "lead", "left": "leave",
	"lent": "lend", "lost": "lose", "made": "make", "meant": "mean",
	"met": "meet", "paid": "pay", "ran": "run", "rode": "ride",
	"rose": "rise", "said": "say", "sang": "sing", "sat": "sit",
	"saw": "see", "sent": "send", "shook": "shake", "slept": "sleep",
	"sold": "sell", "spent": "spend", "spoke": "speak", "stole": "steal",
	"stood": "stand", "swore": "swear", "taught": "teach", "thought": "think",
	"threw": "throw", "told": "tell", "took": "take", "tore": "tear",
	"understood": "understand", "went": "go", "woke": "wake", "won": "win",
	"wore": "wear", "wrote": "write",
}

var irregularNouns = map[string]string{
	"children": "child", "feet": "foot", "geese": "goose", "men": "man",
	"mice": "mouse", "people": "person", "teeth": "tooth", "women": "woman",
	"lives": "life", "knives": "knife", "leaves": "leaf", "wives": "wife",
	"shelves": "shelf", "wolves": "wolf", "halves": "half",
	"criteria": "criterion", "phenomena": "phenomenon", "data": "datum",
	"analyses": "analysis", "crises": "crisis", "theses": "thesis",
}

var irregularAdjectives = map[string]string{
	"better": "good", "best": "good",
	"worse": "bad", "worst": "bad",
	"further": "far", "furthest": "far",
	"farther": "far", "farthest": "far",
	"less": "little", "least": "little",
	"more": "much", "most": "much",
	"elder": "old", "eldest": "old",
}

var gradableAdjectives = map[string]bool{
	"big": true, "bright": true, "busy": true, "calm": true, "cheap": true,
	"clean": true, "clever": true, "close": true, "cold": true, "cool": true,
	"dark": true, "deep": true, "dry": true, "early": true, "easy": true,
	"fast": true, "fat": true, "fine": true, "firm": true, "flat": true,
	"fresh": true, "full": true, "great": true, "happy": true, "hard": true,
	"heavy": true, "high": true, "hot": true, "kind": true, "large": true,
	"late": true, "light": true, "long": true, "loud": true, "low": true,
	"narrow": true, "near": true, "new": true, "nice": true, "old": true,
	"plain": true, "poor": true, "quick": true, "quiet": true, "rich": true,
	"sad": true, "safe": true, "sharp": true, "short": true, "simple": true,
	"slow": true, "small": true, "smart": true, "soft": true, "strong": true,
	"sweet": true, "tall": true, "thick": true, "thin": true, "tight": true,
	"tough": true, "warm": true, "weak": true, "wide": true, "wild": true,
	"young": true,
}

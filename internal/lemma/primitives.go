package lemma

import "strings"

// IsPrimitive reports whether an English token is too common to be worth a
// dictionary lookup: function words, pronouns, basic verbs with their common
// inflections, elementary adjectives and adverbs, small numbers. Matching is
// case-insensitive.
func IsPrimitive(word string) bool {
	return primitiveWords[strings.ToLower(strings.TrimSpace(word))]
}

var primitiveWords = buildPrimitiveSet(
	// Articles, conjunctions, particles.
	"a", "an", "the", "and", "or", "but", "nor", "so", "yet", "if", "then",
	"than", "that", "this", "these", "those", "as", "because", "while",
	"not", "no", "yes", "too", "also", "just", "only", "even", "still",

	// Prepositions.
	"in", "on", "at", "to", "for", "of", "with", "by", "from", "up", "down",
	"out", "off", "over", "under", "about", "into", "onto", "through",
	"between", "after", "before", "during", "against", "among", "around",

	// Pronouns and determiners.
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us",
	"them", "my", "your", "his", "its", "our", "their", "mine", "yours",
	"hers", "ours", "theirs", "who", "whom", "whose", "which", "what",
	"where", "when", "why", "how", "all", "any", "both", "each", "few",
	"many", "much", "more", "most", "some", "such", "every", "other",
	"another", "one", "ones", "none", "something", "anything", "nothing",
	"everything", "someone", "anyone", "everyone", "nobody",

	// Basic verbs with common inflections.
	"be", "am", "is", "are", "was", "were", "been", "being",
	"have", "has", "had", "having",
	"do", "does", "did", "doing", "done",
	"go", "goes", "went", "going", "gone",
	"get", "gets", "got", "getting",
	"make", "makes", "made", "making",
	"take", "takes", "took", "taking", "taken",
	"come", "comes", "came", "coming",
	"see", "sees", "saw", "seeing", "seen",
	"know", "knows", "knew", "knowing", "known",
	"think", "thinks", "thought", "thinking",
	"say", "says", "said", "saying",
	"tell", "tells", "told", "telling",
	"want", "wants", "wanted", "wanting",
	"use", "uses", "used", "using",
	"find", "finds", "found", "finding",
	"give", "gives", "gave", "giving", "given",
	"work", "works", "worked", "working",
	"look", "looks", "looked", "looking",
	"need", "needs", "needed", "needing",
	"can", "could", "will", "would", "shall", "should", "may", "might", "must",

	// Elementary adjectives and adverbs.
	"good", "bad", "big", "small", "new", "old", "young", "long", "short",
	"high", "low", "hot", "cold", "fast", "slow", "easy", "hard", "early",
	"late", "right", "wrong", "same", "different", "very", "really", "well",
	"here", "there", "now", "soon", "always", "never", "often", "sometimes",
	"again", "away", "back", "far", "near", "once", "twice", "together",

	// Elementary nouns.
	"time", "day", "year", "week", "month", "hour", "minute", "man", "woman",
	"child", "people", "person", "thing", "way", "place", "home", "house",
	"water", "food", "money", "word", "name", "number", "part", "point",
	"hand", "head", "eye", "face", "side", "end", "life", "world",

	// Numbers one through ten.
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
)

func buildPrimitiveSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

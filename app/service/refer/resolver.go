// Package refer resolves which concrete products a user message points at,
// given the products most recently shown to them.
package refer

import (
	"strings"

	"shopfront/app/service/catalog"
)

// ordinalWords maps position keywords to zero-based indexes, checked in
// order so "the first and second" deterministically resolves to the first.
var ordinalWords = []struct {
	Word  string
	Index int
}{
	{"first", 0},
	{"1st", 0},
	{"second", 1},
	{"2nd", 1},
	{"third", 2},
	{"3rd", 2},
}

var pronounWords = []string{"it", "this", "that"}

// Resolve returns the subsequence of suggested products the query refers to.
// Precedence: explicit name > ordinal > collective > pronoun. A user naming a
// product is never overridden by a stray "it" elsewhere in the sentence.
func Resolve(query string, suggested []catalog.Product) []catalog.Product {
	if len(suggested) == 0 {
		return nil
	}

	lower := strings.ToLower(query)

	if matched := matchByName(lower, suggested); len(matched) > 0 {
		return matched
	}

	if matched, ok := matchByOrdinal(lower, suggested); ok {
		return matched
	}

	if matched := matchCollective(lower, suggested); len(matched) > 0 {
		return matched
	}

	if containsWord(lower, pronounWords...) {
		return suggested[:1]
	}

	return nil
}

func matchByName(lower string, suggested []catalog.Product) []catalog.Product {
	var result []catalog.Product

	for _, product := range suggested {
		if strings.Contains(lower, strings.ToLower(product.Name)) {
			result = append(result, product)
		}
	}

	return result
}

func matchByOrdinal(lower string, suggested []catalog.Product) ([]catalog.Product, bool) {
	for _, ordinal := range ordinalWords {
		if !containsWord(lower, ordinal.Word) {
			continue
		}

		if ordinal.Index >= len(suggested) {
			return nil, true
		}

		return suggested[ordinal.Index : ordinal.Index+1], true
	}

	if containsWord(lower, "last") {
		return suggested[len(suggested)-1:], true
	}

	return nil, false
}

func matchCollective(lower string, suggested []catalog.Product) []catalog.Product {
	if containsWord(lower, "both") {
		if len(suggested) < 2 {
			return nil
		}

		return suggested[:2]
	}

	if containsWord(lower, "all") {
		return suggested
	}

	return nil
}

// containsWord reports whether any of the words occurs in the query as a
// whole token, so "it" does not fire on "guitar".
func containsWord(lower string, words ...string) bool {
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	for _, token := range tokens {
		for _, word := range words {
			if token == word {
				return true
			}
		}
	}

	return false
}

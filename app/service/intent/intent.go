// Package intent detects cart-mutation commands and product-seeking queries
// with fixed phrase tables. There is no trained model here on purpose: the
// tables are cheap to extend and fully testable.
package intent

import "strings"

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionNone   Action = "none"
)

var addPhrases = []string{
	"add to cart",
	"add it",
	"add the",
	"add both",
	"add all",
	"add them",
	"buy it",
	"buy the",
	"i'll take",
	"ill take",
	"i will take",
	"put it in",
	"put them in",
	"to my cart",
}

var removePhrases = []string{
	"remove from cart",
	"remove it",
	"remove the",
	"remove both",
	"remove all",
	"delete it",
	"delete the",
	"take it out",
	"take them out",
	"out of my cart",
	"out of the cart",
}

var inquiryPhrases = []string{
	"do you have",
	"do you sell",
	"show me",
	"looking for",
	"i want",
	"i need",
	"find me",
	"find a",
	"recommend",
	"suggest",
	"any good",
	"what about",
	"searching for",
}

// productNouns are generic product-type words; their presence marks a query
// as being about the catalog rather than small talk.
var productNouns = []string{
	"shoe", "shoes", "sneaker", "sneakers", "boots",
	"laptop", "computer", "phone", "smartphone", "headphones", "earbuds",
	"book", "books", "novel", "cookbook",
	"jacket", "clothes", "clothing",
	"pillow", "coffee", "chocolate", "snack", "snacks",
	"gift", "product", "products", "item", "items", "something",
}

// ClassifyAction reports whether the query is a cart command.
// The add check runs first, so a query matching both tables yields add.
func ClassifyAction(query string) Action {
	lower := strings.ToLower(query)

	for _, phrase := range addPhrases {
		if strings.Contains(lower, phrase) {
			return ActionAdd
		}
	}

	for _, phrase := range removePhrases {
		if strings.Contains(lower, phrase) {
			return ActionRemove
		}
	}

	return ActionNone
}

// IsProductSeeking judges whether a conversational query is actually asking
// for products: an inquiry phrase co-occurring with a product noun, or a
// question containing a product noun.
func IsProductSeeking(query string) bool {
	lower := strings.ToLower(query)

	hasNoun := false
	for _, noun := range productNouns {
		if strings.Contains(lower, noun) {
			hasNoun = true
			break
		}
	}

	if !hasNoun {
		return false
	}

	for _, phrase := range inquiryPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return strings.Contains(lower, "?")
}

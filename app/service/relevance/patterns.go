package relevance

// categoryGroups maps a semantic category to the query keywords that imply it.
// A term hitting a group only scores when the product also matches the group.
var categoryGroups = map[string][]string{
	"books":       {"book", "books", "novel", "read", "reading", "cookbook", "paperback", "hardcover"},
	"electronics": {"electronics", "gadget", "tech", "laptop", "computer", "phone", "smartphone", "headphones", "earbuds", "charger"},
	"fashion":     {"fashion", "clothes", "clothing", "wear", "shoes", "shoe", "sneakers", "sneaker", "boots", "jacket", "outfit"},
	"home":        {"home", "kitchen", "decor", "furniture", "pillow", "coffee", "bedding", "mug"},
	"food":        {"food", "snack", "snacks", "chocolate", "coffee", "beans", "gourmet", "tea"},
}

// typeCues are high-precision mappings from a query term to a product-name
// substring. A hit is worth more than any single text match.
var typeCues = []struct {
	Terms       []string
	NameContain string
}{
	{Terms: []string{"shoe", "shoes", "sneaker", "sneakers"}, NameContain: "sneakers"},
	{Terms: []string{"laptop", "computer", "notebook"}, NameContain: "laptop"},
	{Terms: []string{"phone", "smartphone"}, NameContain: "phone"},
}

const (
	weightName        = 10
	weightCategory    = 6
	weightDescription = 3
	weightFeature     = 2
	bonusGroup        = 8
	bonusTypeCue      = 10
	bonusBadge        = 1
	bonusInterest     = 2
)

package conversation

import (
	"fmt"
	"strings"

	"shopfront/app/service/cart"
	"shopfront/app/service/catalog"

	_ "embed"
)

//go:embed system_prompt.txt
var systemPromptTemplate string

//go:embed few_shot.txt
var fewShotExamples string

type promptInput struct {
	Profile        UserProfile
	Cart           cart.Snapshot
	Context        string
	IncludeCatalog bool
	Catalog        []catalog.Product
	Query          string
}

// composePrompt builds the full instruction text for the model. The catalog
// dump and few-shot examples are only embedded for product-seeking turns to
// keep purely conversational prompts small.
func composePrompt(input promptInput) string {
	var conversationSection string
	if input.Context != "" {
		conversationSection = "\nRecent conversation:\n" + input.Context
	}

	var catalogSection string
	if input.IncludeCatalog {
		catalogSection = "\nStore catalog:\n" + formatCatalog(input.Catalog) + "\n" + fewShotExamples
	}

	templateValues := map[string]any{
		"user_context":         formatUserContext(input.Profile, input.Cart),
		"conversation_section": conversationSection,
		"catalog_section":      catalogSection,
		"query":                input.Query,
	}

	prompt := systemPromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return prompt
}

func formatUserContext(profile UserProfile, snapshot cart.Snapshot) string {
	var builder strings.Builder

	if len(snapshot.Items) == 0 {
		builder.WriteString("- Cart: empty\n")
	} else {
		parts := make([]string, 0, len(snapshot.Items))
		for _, line := range snapshot.Items {
			parts = append(parts, fmt.Sprintf("%d x %s", line.Quantity, line.Product.Name))
		}

		builder.WriteString(fmt.Sprintf("- Cart: %s (total $%.2f)\n",
			strings.Join(parts, ", "), snapshot.TotalPrice))
	}

	if len(profile.Interests) > 0 {
		builder.WriteString("- Interested in: " + strings.Join(profile.Interests, ", ") + "\n")
	}

	if len(profile.RecentSearches) > 0 {
		builder.WriteString("- Recent searches: " + strings.Join(profile.RecentSearches, "; ") + "\n")
	}

	return strings.TrimRight(builder.String(), "\n")
}

func formatCatalog(products []catalog.Product) string {
	var builder strings.Builder

	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}

		builder.WriteString(fmt.Sprintf("- %s | $%.2f | %s | rated %.1f (%d reviews) | %s | %s\n",
			p.Name, p.Price, p.Category, p.Rating, p.Reviews, stock, p.Description))
	}

	return strings.TrimRight(builder.String(), "\n")
}

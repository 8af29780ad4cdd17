package relevance

import (
	"sort"
	"strings"

	"shopfront/app/service/catalog"
)

// ScoredProduct pairs a product with its transient relevance score.
type ScoredProduct struct {
	Product catalog.Product
	Score   float64
}

// Profile is the slice of user state the scorer cares about.
type Profile struct {
	Interests []string
	PriceMin  float64
	PriceMax  float64
}

// Scorer ranks catalog entries against a free-text query.
// It is pure: no I/O, identical inputs always produce identical output.
type Scorer struct {
	Threshold float64
	Limit     int
}

func (s Scorer) Rank(query string, products []catalog.Product, profile Profile) []ScoredProduct {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	var result []ScoredProduct

	for _, product := range products {
		score := scoreProduct(terms, product, profile)
		if score < s.Threshold {
			continue
		}

		result = append(result, ScoredProduct{Product: product, Score: score})
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	if s.Limit > 0 && len(result) > s.Limit {
		result = result[:s.Limit]
	}

	return result
}

func scoreProduct(terms []string, product catalog.Product, profile Profile) float64 {
	name := strings.ToLower(product.Name)
	category := strings.ToLower(product.Category)
	description := strings.ToLower(product.Description)

	var score float64

	for _, term := range terms {
		if strings.Contains(name, term) {
			score += weightName
		}
		if strings.Contains(category, term) {
			score += weightCategory
		}
		if strings.Contains(description, term) {
			score += weightDescription
		}

		for _, feature := range product.Features {
			if strings.Contains(strings.ToLower(feature), term) {
				score += weightFeature
			}
		}

		for group, keywords := range categoryGroups {
			if !containsTerm(keywords, term) {
				continue
			}
			if productMatchesGroup(group, category, name, description) {
				score += bonusGroup
			}
		}

		for _, cue := range typeCues {
			if containsTerm(cue.Terms, term) && strings.Contains(name, cue.NameContain) {
				score += bonusTypeCue
			}
		}
	}

	if score == 0 {
		return 0
	}

	if product.Badge == "Popular" || product.Badge == "Bestseller" {
		score += bonusBadge
	}

	for _, interest := range profile.Interests {
		if strings.EqualFold(interest, product.Category) {
			score += bonusInterest
			break
		}
	}

	if profile.PriceMax > 0 && product.Price >= profile.PriceMin && product.Price <= profile.PriceMax {
		score += bonusInterest
	}

	return score
}

func productMatchesGroup(group, category, name, description string) bool {
	if strings.Contains(category, group) || strings.EqualFold(category, group) {
		return true
	}

	for _, keyword := range categoryGroups[group] {
		if strings.Contains(name, keyword) || strings.Contains(description, keyword) {
			return true
		}
	}

	return false
}

func containsTerm(list []string, term string) bool {
	for _, item := range list {
		if item == term {
			return true
		}
	}

	return false
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	result := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, ".,!?\"'()")
		if field != "" {
			result = append(result, field)
		}
	}

	return result
}

package conversation

import (
	"strings"

	"shopfront/app/service/catalog"

	"github.com/elliotchance/pie/v2"
)

// buildContext renders a bounded window of recent turns plus the current
// referent window into the opaque text block embedded in prompts.
func buildContext(turns []Turn, lastSuggested []catalog.Product, maxTurns int) string {
	if len(turns) == 0 && len(lastSuggested) == 0 {
		return ""
	}

	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	var builder strings.Builder

	for _, turn := range turns {
		switch turn.Role {
		case RoleUser:
			builder.WriteString("User: ")
		default:
			builder.WriteString("Assistant: ")
		}

		builder.WriteString(turn.Content)

		if len(turn.Suggestions) > 0 {
			builder.WriteString(" [suggested: ")
			builder.WriteString(strings.Join(productNames(turn.Suggestions), ", "))
			builder.WriteString("]")
		}

		builder.WriteString("\n")
	}

	if len(lastSuggested) > 0 {
		builder.WriteString("Last suggested products: ")
		builder.WriteString(strings.Join(productNames(lastSuggested), ", "))
		builder.WriteString("\n")
	}

	return builder.String()
}

func productNames(products []catalog.Product) []string {
	return pie.Map(products, func(p catalog.Product) string {
		return p.Name
	})
}

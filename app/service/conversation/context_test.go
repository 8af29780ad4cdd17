package conversation

import (
	"strings"
	"testing"

	"shopfront/app/service/catalog"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextRendersRoles(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello, how can I help?"},
	}

	block := buildContext(turns, nil, 6)

	assert.Contains(t, block, "User: hi")
	assert.Contains(t, block, "Assistant: hello, how can I help?")
}

func TestBuildContextAnnotatesSuggestions(t *testing.T) {
	turns := []Turn{
		{
			Role:    RoleAssistant,
			Content: "try these",
			Suggestions: []catalog.Product{
				{Name: "Running Sneakers"},
				{Name: "Trail Hiking Boots"},
			},
		},
	}

	block := buildContext(turns, nil, 6)

	assert.Contains(t, block, "[suggested: Running Sneakers, Trail Hiking Boots]")
}

func TestBuildContextBoundsTurns(t *testing.T) {
	var turns []Turn
	for i := 0; i < 10; i++ {
		turns = append(turns, Turn{Role: RoleUser, Content: "message"})
	}

	block := buildContext(turns, nil, 6)

	assert.Equal(t, 6, strings.Count(block, "User: message"))
}

func TestBuildContextListsLastSuggested(t *testing.T) {
	suggested := []catalog.Product{{Name: "Nova X5 Smartphone"}}

	block := buildContext(nil, suggested, 6)

	assert.Contains(t, block, "Last suggested products: Nova X5 Smartphone")
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, buildContext(nil, nil, 6))
}

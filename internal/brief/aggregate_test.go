package brief

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/account-brief/internal/model"
)

func TestAggregate(t *testing.T) {
	site := []model.SearchResult{
		{Title: "a", URL: "https://x.com/a"},
		{Title: "b", URL: "https://x.com/b"},
	}
	news := []model.SearchResult{
		{Title: "b again", URL: "https://x.com/b"},
		{Title: "c", URL: "https://news.com/c"},
	}

	got := Aggregate(site, news)
	assert.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
	assert.Equal(t, "c", got[2].Title)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

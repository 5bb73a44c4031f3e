package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser normalizes RSS and Atom documents to Items. gofeed handles the
// format split, including Atom links carried in the href attribute.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) ([]Item, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		Title: Sanitize(item.Title),
		Link:  item.Link,
		// First non-empty of description/summary/content, stripped of markup.
		Description: Sanitize(cmp.Or(item.Description, item.Content)),
		PubDate:     cmp.Or(item.Published, item.Updated),
	}

	if len(item.Categories) > 0 {
		normalized.Category = item.Categories[0]
	}

	return normalized
}

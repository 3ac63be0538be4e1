package website

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPageInfo(t *testing.T) {
	items := []struct {
		name                string
		pageParam           string
		totalItems, perPage int
		page, totalPages    int
		ok                  bool
	}{
		{"good, no param", "", 85, 10, 1, 9, true},
		{"good", "2", 85, 10, 2, 9, true},
		{"too big", "10", 85, 10, 0, 0, false},
		{"too small", "0", 85, 10, 0, 0, false},
		{"pizza", "pizza", 85, 10, 0, 0, false},
		{"zero items, no param", "", 0, 10, 1, 1, true}, // should go to page 1
		{"zero items, page 1", "1", 0, 10, 1, 1, true},
		{"zero items, too big", "2", 0, 10, 0, 0, false},
		{"zero items, too small", "0", 0, 10, 0, 0, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			page, totalPages, ok := getPageInfo(item.pageParam, item.totalItems, item.perPage)
			assert.Equal(t, item.page, page)
			assert.Equal(t, item.totalPages, totalPages)
			assert.Equal(t, item.ok, ok)
		})
	}
}

func TestMakePageInfo(t *testing.T) {
	pageUrl := func(page int) string {
		return fmt.Sprintf("/things/%d", page)
	}

	t.Run("middle page", func(t *testing.T) {
		info := makePageInfo(3, 5, pageUrl)
		assert.Equal(t, "/things/1", info.FirstUrl)
		assert.Equal(t, "/things/5", info.LastUrl)
		assert.Equal(t, "/things/2", info.PrevUrl)
		assert.Equal(t, "/things/4", info.NextUrl)
	})

	t.Run("single page has no prev or next", func(t *testing.T) {
		info := makePageInfo(1, 1, pageUrl)
		assert.Empty(t, info.PrevUrl)
		assert.Empty(t, info.NextUrl)
	})
}

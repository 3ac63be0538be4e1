package website

import (
	"math"
	"strconv"

	"git.teamcore.network/tcn/tcn/src/templates"
)

func getPageInfo(
	pageParam string,
	totalItems int,
	itemsPerPage int,
) (
	page int,
	totalPages int,
	ok bool,
) {
	totalPages = int(math.Ceil(float64(totalItems) / float64(itemsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	ok = true

	page = 1
	if pageParam != "" {
		if pageParsed, err := strconv.Atoi(pageParam); err == nil {
			page = pageParsed
		} else {
			return 0, 0, false
		}
	}
	if page < 1 || totalPages < page {
		return 0, 0, false
	}

	return
}

// Builds the template pagination controls for a pageUrl function like
// tcnurl.BuildForumCategory's page argument.
func makePageInfo(page, totalPages int, pageUrl func(page int) string) templates.PageInfo {
	info := templates.PageInfo{
		Current:  page,
		Total:    totalPages,
		FirstUrl: pageUrl(1),
		LastUrl:  pageUrl(totalPages),
	}
	if page > 1 {
		info.PrevUrl = pageUrl(page - 1)
	}
	if page < totalPages {
		info.NextUrl = pageUrl(page + 1)
	}
	return info
}

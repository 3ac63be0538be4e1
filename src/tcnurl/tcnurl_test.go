package tcnurl

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrl(t *testing.T) {
	t.Run("no query", func(t *testing.T) {
		result := Url("/test/foo", nil)
		assert.Contains(t, result, "/test/foo")
	})
	t.Run("yes query", func(t *testing.T) {
		result := Url("/test/foo", []Q{{"bar", "baz"}, {"zig??", "zig & zag!!"}})
		assert.Contains(t, result, "/test/foo?bar=baz&zig%3F%3F=zig+%26+zag%21%21")
	})
}

func TestHomepage(t *testing.T) {
	AssertRegexMatch(t, BuildHomepage(), RegexHomepage, nil)
}

func TestAuthPages(t *testing.T) {
	AssertRegexMatch(t, BuildRegister(), RegexRegister, nil)
	AssertRegexMatch(t, BuildLogin(""), RegexLogin, nil)
	AssertRegexMatch(t, BuildLogin("/forum"), RegexLogin, nil)
	AssertRegexMatch(t, BuildLogout(), RegexLogout, nil)
}

func TestSupport(t *testing.T) {
	AssertRegexMatch(t, BuildSupport(), RegexSupport, nil)
	AssertRegexMatch(t, BuildSupportThanks("abc"), RegexSupportThanks, nil)
}

func TestWiki(t *testing.T) {
	AssertRegexMatch(t, BuildWikiIndex(), RegexWikiIndex, nil)
	AssertRegexMatch(t, BuildWikiNew(), RegexWikiNew, nil)
	AssertRegexMatch(t, BuildWikiPage("getting-started"), RegexWikiPage, map[string]string{"slug": "getting-started"})
	AssertRegexMatch(t, BuildWikiEdit("getting-started"), RegexWikiEdit, map[string]string{"slug": "getting-started"})
	AssertRegexMatch(t, BuildWikiHistory("getting-started"), RegexWikiHistory, map[string]string{"slug": "getting-started"})
	AssertRegexMatch(t, BuildWikiDelete("getting-started"), RegexWikiDelete, map[string]string{"slug": "getting-started"})
}

func TestWikiSlugDoesNotSwallowSubpages(t *testing.T) {
	assert.Nil(t, RegexWikiPage.FindStringSubmatch("/wiki/getting-started/edit"))
	assert.Nil(t, RegexWikiPage.FindStringSubmatch("/wiki/UPPERCASE"))
	assert.Nil(t, RegexWikiPage.FindStringSubmatch("/wiki/bad--slug"))
}

func TestForum(t *testing.T) {
	AssertRegexMatch(t, BuildForumIndex(), RegexForumIndex, nil)
	AssertRegexMatch(t, BuildForumCategory("general", 1), RegexForumCategory, map[string]string{"catslug": "general"})
	AssertRegexMatch(t, BuildForumCategory("general", 2), RegexForumCategory, map[string]string{"catslug": "general", "page": "2"})
	AssertRegexMatch(t, BuildForumNewThread("general"), RegexForumNewThread, map[string]string{"catslug": "general"})
	AssertRegexMatch(t, BuildForumThread("general", 1, 1), RegexForumThread, map[string]string{"catslug": "general", "threadid": "1"})
	AssertRegexMatch(t, BuildForumThread("general", 1, 2), RegexForumThread, map[string]string{"catslug": "general", "threadid": "1", "page": "2"})
	AssertRegexMatch(t, BuildForumThreadReply("general", 1), RegexForumThreadReply, map[string]string{"catslug": "general", "threadid": "1"})
	AssertRegexMatch(t, BuildForumThreadDelete("general", 1), RegexForumThreadDelete, map[string]string{"catslug": "general", "threadid": "1"})
	AssertRegexMatch(t, BuildForumPostEdit("general", 1, 2), RegexForumPostEdit, map[string]string{"catslug": "general", "threadid": "1", "postid": "2"})
	AssertRegexMatch(t, BuildForumPostDelete("general", 1, 2), RegexForumPostDelete, map[string]string{"catslug": "general", "threadid": "1", "postid": "2"})
}

func TestAdmin(t *testing.T) {
	AssertRegexMatch(t, BuildAdminDashboard(), RegexAdminDashboard, nil)
	AssertRegexMatch(t, BuildAdminUsers(), RegexAdminUsers, nil)
	AssertRegexMatch(t, BuildAdminUserRole(3), RegexAdminUserRole, map[string]string{"userid": "3"})
	AssertRegexMatch(t, BuildAdminRoles(), RegexAdminRoles, nil)
	AssertRegexMatch(t, BuildAdminCategories(), RegexAdminCategories, nil)
	AssertRegexMatch(t, BuildAdminCategoryEdit(4), RegexAdminCategoryEdit, map[string]string{"catid": "4"})
	AssertRegexMatch(t, BuildAdminCategoryDelete(4), RegexAdminCategoryDelete, map[string]string{"catid": "4"})
	AssertRegexMatch(t, BuildAdminTickets(), RegexAdminTickets, nil)
	AssertRegexMatch(t, BuildAdminTicketStatus(5), RegexAdminTicketStatus, map[string]string{"ticketid": "5"})
}

func TestAPIServerStatus(t *testing.T) {
	AssertRegexMatch(t, BuildAPIServerStatus(), RegexAPIServerStatus, nil)
}

func AssertRegexMatch(t *testing.T, fullUrl string, regex *regexp.Regexp, paramsToVerify map[string]string) {
	parsed, err := url.Parse(fullUrl)
	ok := assert.Nilf(t, err, "Full url could not be parsed: %s", fullUrl)
	if !ok {
		return
	}

	requestPath := parsed.Path
	if len(requestPath) == 0 {
		requestPath = "/"
	}
	match := regex.FindStringSubmatch(requestPath)
	assert.NotNilf(t, match, "Url did not match regex: [%s] vs [%s]", requestPath, regex.String())

	if paramsToVerify != nil {
		subexpNames := regex.SubexpNames()
		for i, matchedValue := range match {
			paramName := subexpNames[i]
			expectedValue, ok := paramsToVerify[paramName]
			if ok {
				assert.Equalf(t, expectedValue, matchedValue, "Param mismatch for [%s]", paramName)
				delete(paramsToVerify, paramName)
			}
		}
		if len(paramsToVerify) > 0 {
			unmatchedParams := make([]string, 0, len(paramsToVerify))
			for paramName := range paramsToVerify {
				unmatchedParams = append(unmatchedParams, paramName)
			}
			assert.Fail(t, "Expected match groups not found", unmatchedParams)
		}
	}
}

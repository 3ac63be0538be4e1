package tcnurl

import (
	"regexp"
	"strconv"

	"git.teamcore.network/tcn/tcn/src/oops"
)

var RegexHomepage = regexp.MustCompile("^/$")

func BuildHomepage() string {
	return Url("/", nil)
}

var RegexRegister = regexp.MustCompile("^/register$")

func BuildRegister() string {
	return Url("/register", nil)
}

var RegexLogin = regexp.MustCompile("^/login$")

func BuildLogin(redirectTo string) string {
	var query []Q
	if redirectTo != "" {
		query = append(query, Q{Name: "redirect", Value: redirectTo})
	}
	return Url("/login", query)
}

var RegexLogout = regexp.MustCompile("^/logout$")

func BuildLogout() string {
	return Url("/logout", nil)
}

var RegexSupport = regexp.MustCompile("^/support$")

func BuildSupport() string {
	return Url("/support", nil)
}

var RegexSupportThanks = regexp.MustCompile("^/support/thanks$")

func BuildSupportThanks(reference string) string {
	return Url("/support/thanks", []Q{{Name: "ref", Value: reference}})
}

//
// Wiki
//

var RegexWikiIndex = regexp.MustCompile("^/wiki$")

func BuildWikiIndex() string {
	return Url("/wiki", nil)
}

var RegexWikiNew = regexp.MustCompile("^/wiki/new$")

func BuildWikiNew() string {
	return Url("/wiki/new", nil)
}

var RegexWikiPage = regexp.MustCompile(`^/wiki/(?P<slug>[a-z0-9]+(-[a-z0-9]+)*)$`)

func BuildWikiPage(slug string) string {
	return Url("/wiki/"+slug, nil)
}

var RegexWikiEdit = regexp.MustCompile(`^/wiki/(?P<slug>[a-z0-9]+(-[a-z0-9]+)*)/edit$`)

func BuildWikiEdit(slug string) string {
	return Url("/wiki/"+slug+"/edit", nil)
}

var RegexWikiHistory = regexp.MustCompile(`^/wiki/(?P<slug>[a-z0-9]+(-[a-z0-9]+)*)/history$`)

func BuildWikiHistory(slug string) string {
	return Url("/wiki/"+slug+"/history", nil)
}

var RegexWikiDelete = regexp.MustCompile(`^/wiki/(?P<slug>[a-z0-9]+(-[a-z0-9]+)*)/delete$`)

func BuildWikiDelete(slug string) string {
	return Url("/wiki/"+slug+"/delete", nil)
}

//
// Forum
//

var RegexForumIndex = regexp.MustCompile("^/forum$")

func BuildForumIndex() string {
	return Url("/forum", nil)
}

var RegexForumCategory = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)(/(?P<page>\d+))?$`)

func BuildForumCategory(categorySlug string, page int) string {
	if page < 1 {
		panic(oops.New(nil, "Invalid forum category page (%d), must be >= 1", page))
	}
	path := "/forum/" + categorySlug
	if page > 1 {
		path += "/" + strconv.Itoa(page)
	}
	return Url(path, nil)
}

var RegexForumNewThread = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/new$`)

func BuildForumNewThread(categorySlug string) string {
	return Url("/forum/"+categorySlug+"/new", nil)
}

var RegexForumThread = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/t/(?P<threadid>\d+)(/(?P<page>\d+))?$`)

func BuildForumThread(categorySlug string, threadId int, page int) string {
	if page < 1 {
		panic(oops.New(nil, "Invalid forum thread page (%d), must be >= 1", page))
	}
	path := "/forum/" + categorySlug + "/t/" + strconv.Itoa(threadId)
	if page > 1 {
		path += "/" + strconv.Itoa(page)
	}
	return Url(path, nil)
}

var RegexForumThreadReply = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/t/(?P<threadid>\d+)/reply$`)

func BuildForumThreadReply(categorySlug string, threadId int) string {
	return Url("/forum/"+categorySlug+"/t/"+strconv.Itoa(threadId)+"/reply", nil)
}

var RegexForumThreadDelete = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/t/(?P<threadid>\d+)/delete$`)

func BuildForumThreadDelete(categorySlug string, threadId int) string {
	return Url("/forum/"+categorySlug+"/t/"+strconv.Itoa(threadId)+"/delete", nil)
}

var RegexForumPostEdit = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/t/(?P<threadid>\d+)/p/(?P<postid>\d+)/edit$`)

func BuildForumPostEdit(categorySlug string, threadId int, postId int) string {
	return Url("/forum/"+categorySlug+"/t/"+strconv.Itoa(threadId)+"/p/"+strconv.Itoa(postId)+"/edit", nil)
}

var RegexForumPostDelete = regexp.MustCompile(`^/forum/(?P<catslug>[a-z0-9]+(-[a-z0-9]+)*)/t/(?P<threadid>\d+)/p/(?P<postid>\d+)/delete$`)

func BuildForumPostDelete(categorySlug string, threadId int, postId int) string {
	return Url("/forum/"+categorySlug+"/t/"+strconv.Itoa(threadId)+"/p/"+strconv.Itoa(postId)+"/delete", nil)
}

//
// Admin
//

var RegexAdminDashboard = regexp.MustCompile("^/admin$")

func BuildAdminDashboard() string {
	return Url("/admin", nil)
}

var RegexAdminUsers = regexp.MustCompile("^/admin/users$")

func BuildAdminUsers() string {
	return Url("/admin/users", nil)
}

var RegexAdminUserRole = regexp.MustCompile(`^/admin/users/(?P<userid>\d+)/role$`)

func BuildAdminUserRole(userId int) string {
	return Url("/admin/users/"+strconv.Itoa(userId)+"/role", nil)
}

var RegexAdminRoles = regexp.MustCompile("^/admin/roles$")

func BuildAdminRoles() string {
	return Url("/admin/roles", nil)
}

var RegexAdminCategories = regexp.MustCompile("^/admin/categories$")

func BuildAdminCategories() string {
	return Url("/admin/categories", nil)
}

var RegexAdminCategoryEdit = regexp.MustCompile(`^/admin/categories/(?P<catid>\d+)$`)

func BuildAdminCategoryEdit(categoryId int) string {
	return Url("/admin/categories/"+strconv.Itoa(categoryId), nil)
}

var RegexAdminCategoryDelete = regexp.MustCompile(`^/admin/categories/(?P<catid>\d+)/delete$`)

func BuildAdminCategoryDelete(categoryId int) string {
	return Url("/admin/categories/"+strconv.Itoa(categoryId)+"/delete", nil)
}

var RegexAdminTickets = regexp.MustCompile("^/admin/tickets$")

func BuildAdminTickets() string {
	return Url("/admin/tickets", nil)
}

var RegexAdminTicketStatus = regexp.MustCompile(`^/admin/tickets/(?P<ticketid>\d+)/status$`)

func BuildAdminTicketStatus(ticketId int) string {
	return Url("/admin/tickets/"+strconv.Itoa(ticketId)+"/status", nil)
}

//
// API
//

var RegexAPIServerStatus = regexp.MustCompile("^/api/server-status$")

func BuildAPIServerStatus() string {
	return Url("/api/server-status", nil)
}

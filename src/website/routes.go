package website

import (
	"net/http"
	"regexp"
	"time"

	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

func NewWebsiteRoutes(conn *pgxpool.Pool) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			attachConn(conn),
			attachLogger,
			panicCatcherMiddleware,
			logContextErrorsMiddleware,
			trackCurrentUser,
			storeNoticesInCookieMiddleware,
		},
	}

	routes.GET(tcnurl.RegexHomepage, Index)

	// Credential endpoints get rate limiting and a uniform minimum duration,
	// so failures don't leak timing and stuffing attempts stay slow.
	authRoutes := routes.WithMiddleware(rateLimit(rate.Every(time.Second), 10))
	authRoutes.GET(tcnurl.RegexRegister, RegisterPage)
	authRoutes.POST(tcnurl.RegexRegister, func(c *RequestContext) ResponseData {
		return securityTimerMiddleware(time.Second, RegisterSubmit)(c)
	})
	authRoutes.GET(tcnurl.RegexLogin, LoginPage)
	authRoutes.POST(tcnurl.RegexLogin, func(c *RequestContext) ResponseData {
		return securityTimerMiddleware(time.Second, LoginSubmit)(c)
	})
	routes.AnyMethod(tcnurl.RegexLogout, Logout)

	routes.GET(tcnurl.RegexSupport, SupportPage)
	routes.POST(tcnurl.RegexSupport, SupportSubmit)
	routes.GET(tcnurl.RegexSupportThanks, SupportThanks)

	routes.GET(tcnurl.RegexWikiIndex, WikiIndex)
	wikiModeration := routes.WithMiddleware(needsAuth, moderatorsOnly)
	wikiModeration.GET(tcnurl.RegexWikiNew, WikiNewPage)
	wikiModeration.POST(tcnurl.RegexWikiNew, WikiNewPageSubmit)
	routes.GET(tcnurl.RegexWikiPage, WikiPage)
	wikiModeration.GET(tcnurl.RegexWikiEdit, WikiEditPage)
	wikiModeration.POST(tcnurl.RegexWikiEdit, WikiEditPageSubmit)
	routes.GET(tcnurl.RegexWikiHistory, WikiHistory)
	wikiModeration.POST(tcnurl.RegexWikiDelete, WikiDeletePageSubmit)

	routes.GET(tcnurl.RegexForumIndex, ForumIndex)
	routes.GET(tcnurl.RegexForumCategory, ForumCategory)
	routes.GET(tcnurl.RegexForumThread, ForumThread)
	forumAuthed := routes.WithMiddleware(needsAuth)
	forumAuthed.GET(tcnurl.RegexForumNewThread, ForumNewThread)
	forumAuthed.POST(tcnurl.RegexForumNewThread, ForumNewThreadSubmit)
	forumAuthed.POST(tcnurl.RegexForumThreadReply, ForumReplySubmit)
	forumAuthed.GET(tcnurl.RegexForumPostEdit, ForumPostEdit)
	forumAuthed.POST(tcnurl.RegexForumPostEdit, ForumPostEditSubmit)
	forumAuthed.POST(tcnurl.RegexForumPostDelete, ForumPostDeleteSubmit)
	forumModeration := routes.WithMiddleware(needsAuth, moderatorsOnly)
	forumModeration.POST(tcnurl.RegexForumThreadDelete, ForumThreadDeleteSubmit)

	adminRoutes := routes.WithMiddleware(needsAuth, moderatorsOnly)
	adminRoutes.GET(tcnurl.RegexAdminDashboard, AdminDashboard)
	adminRoutes.GET(tcnurl.RegexAdminUsers, AdminUsers)
	adminRoutes.POST(tcnurl.RegexAdminUsers, AdminUserCreateSubmit)
	adminRoutes.POST(tcnurl.RegexAdminUserRole, AdminUserRoleSubmit)
	adminRoutes.GET(tcnurl.RegexAdminTickets, AdminTickets)
	adminRoutes.POST(tcnurl.RegexAdminTicketStatus, AdminTicketStatusSubmit)
	adminRoutes.GET(tcnurl.RegexAdminRoles, AdminRoles)
	adminRoutes.POST(tcnurl.RegexAdminRoles, AdminRoleCreateSubmit)
	adminRoutes.GET(tcnurl.RegexAdminCategories, AdminCategories)
	adminRoutes.POST(tcnurl.RegexAdminCategories, AdminCategoryCreateSubmit)
	adminRoutes.POST(tcnurl.RegexAdminCategoryEdit, AdminCategoryEditSubmit)
	adminRoutes.POST(tcnurl.RegexAdminCategoryDelete, AdminCategoryDeleteSubmit)

	routes.GET(tcnurl.RegexAPIServerStatus, APIServerStatus)

	routes.AnyMethod(regexp.MustCompile("^"), FourOhFour)

	return router
}

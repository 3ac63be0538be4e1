package website

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"git.teamcore.network/tcn/tcn/src/config"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/parsing"
	"git.teamcore.network/tcn/tcn/src/perm"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

type forumIndexData struct {
	templates.BaseData
	Categories []templates.Category
}

func ForumIndex(c *RequestContext) ResponseData {
	categories, err := tcndata.FetchCategories(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch categories"))
	}

	templateCategories := make([]templates.Category, len(categories))
	for i, category := range categories {
		templateCategories[i] = templates.CategoryToTemplate(category)
	}

	var res ResponseData
	res.MustWriteTemplate("forum_index.html", forumIndexData{
		BaseData:   getBaseData(c, "Forum"),
		Categories: templateCategories,
	})
	return res
}

type forumCategoryData struct {
	templates.BaseData
	Category     templates.Category
	Threads      []templates.Thread
	Pagination   templates.PageInfo
	NewThreadUrl string
}

func ForumCategory(c *RequestContext) ResponseData {
	category, err := fetchCategoryBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	numThreads, err := tcndata.CountThreads(c, c.Conn, category.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count threads"))
	}

	threadsPerPage := config.Config.Forum.ThreadsPerPage
	page, numPages, ok := getPageInfo(c.PathParams["page"], numThreads, threadsPerPage)
	if !ok {
		return c.Redirect(tcnurl.BuildForumCategory(category.Slug, 1), http.StatusSeeOther)
	}

	threads, err := tcndata.FetchThreads(c, c.Conn, tcndata.ThreadsQuery{
		CategoryID: category.ID,
		Limit:      threadsPerPage,
		Offset:     (page - 1) * threadsPerPage,
	})
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch threads"))
	}

	templateThreads := make([]templates.Thread, len(threads))
	for i, row := range threads {
		templateThreads[i] = templates.ThreadToTemplate(category.Slug, row.Thread, row.Author, row.LastPoster)
	}

	var res ResponseData
	res.MustWriteTemplate("forum_category.html", forumCategoryData{
		BaseData: getBaseDataWithCrumbs(c, category.Name, []templates.Breadcrumb{
			{Name: "Forum", Url: tcnurl.BuildForumIndex()},
		}),
		Category: templates.CategoryToTemplate(category),
		Threads:  templateThreads,
		Pagination: makePageInfo(page, numPages, func(page int) string {
			return tcnurl.BuildForumCategory(category.Slug, page)
		}),
		NewThreadUrl: tcnurl.BuildForumNewThread(category.Slug),
	})
	return res
}

type forumThreadData struct {
	templates.BaseData
	Thread          templates.Thread
	Posts           []templates.Post
	Pagination      templates.PageInfo
	ReplyUrl        string
	CanDeleteThread bool
}

func ForumThread(c *RequestContext) ResponseData {
	category, thread, err := fetchCategoryAndThreadFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	numPosts, err := tcndata.CountPostsInThread(c, c.Conn, thread.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count posts"))
	}

	postsPerPage := config.Config.Forum.PostsPerPage
	page, numPages, ok := getPageInfo(c.PathParams["page"], numPosts, postsPerPage)
	if !ok {
		return c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
	}

	posts, err := tcndata.FetchThreadPosts(c, c.Conn, thread.ID, tcndata.PostsQuery{
		Limit:  postsPerPage,
		Offset: (page - 1) * postsPerPage,
	})
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch posts"))
	}

	templatePosts := make([]templates.Post, len(posts))
	for i, row := range posts {
		contentHtml := parsing.ParseMarkdown(row.Post.Content, parsing.RealMarkdown)
		templatePost := templates.PostToTemplate(category.Slug, row.Post, row.Author, contentHtml)
		templatePost.Editable = perm.CanModifyPost(c.CurrentUser, row.Post)
		templatePosts[i] = templatePost
	}

	var res ResponseData
	res.MustWriteTemplate("forum_thread.html", forumThreadData{
		BaseData: getBaseDataWithCrumbs(c, thread.Title, []templates.Breadcrumb{
			{Name: "Forum", Url: tcnurl.BuildForumIndex()},
			{Name: category.Name, Url: tcnurl.BuildForumCategory(category.Slug, 1)},
		}),
		Thread: templates.ThreadToTemplate(category.Slug, thread, nil, nil),
		Posts:  templatePosts,
		Pagination: makePageInfo(page, numPages, func(page int) string {
			return tcnurl.BuildForumThread(category.Slug, thread.ID, page)
		}),
		ReplyUrl:        tcnurl.BuildForumThreadReply(category.Slug, thread.ID),
		CanDeleteThread: perm.Check(c.CurrentUser, perm.ActionDeleteThread, nil),
	})
	return res
}

type forumNewThreadData struct {
	templates.BaseData
	Category  templates.Category
	SubmitUrl string
	Title     string
	Content   string
}

func ForumNewThread(c *RequestContext) ResponseData {
	category, err := fetchCategoryBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.MustWriteTemplate("forum_new_thread.html", forumNewThreadData{
		BaseData:  getBaseData(c, "New thread"),
		Category:  templates.CategoryToTemplate(category),
		SubmitUrl: tcnurl.BuildForumNewThread(category.Slug),
	})
	return res
}

func ForumNewThreadSubmit(c *RequestContext) ResponseData {
	category, err := fetchCategoryBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	title := strings.TrimSpace(formValues.Get("title"))
	content := formValues.Get("content")

	thread, _, err := tcndata.CreateThread(c, c.Conn, category.ID, c.CurrentUser.ID, title, content)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			baseData := getBaseData(c, "New thread")
			baseData.AddImmediateNotice("failure", msg)
			var res ResponseData
			res.StatusCode = http.StatusBadRequest
			res.MustWriteTemplate("forum_new_thread.html", forumNewThreadData{
				BaseData:  baseData,
				Category:  templates.CategoryToTemplate(category),
				SubmitUrl: tcnurl.BuildForumNewThread(category.Slug),
				Title:     title,
				Content:   content,
			})
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create thread"))
	}

	return c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
}

func ForumReplySubmit(c *RequestContext) ResponseData {
	category, thread, err := fetchCategoryAndThreadFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	content := formValues.Get("content")

	_, err = tcndata.CreateReply(c, c.Conn, thread.ID, c.CurrentUser.ID, content)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			res := c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
			res.AddFutureNotice("failure", msg)
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create reply"))
	}

	// Land on the last page, where the new reply is.
	numPosts, err := tcndata.CountPostsInThread(c, c.Conn, thread.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count posts"))
	}
	lastPage := (numPosts + config.Config.Forum.PostsPerPage - 1) / config.Config.Forum.PostsPerPage
	if lastPage < 1 {
		lastPage = 1
	}

	return c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, lastPage), http.StatusSeeOther)
}

type forumPostEditData struct {
	templates.BaseData
	Thread    templates.Thread
	SubmitUrl string
	Content   string
}

func ForumPostEdit(c *RequestContext) ResponseData {
	category, thread, post, err := fetchPostFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	if !perm.CanModifyPost(c.CurrentUser, post) {
		return c.ErrorResponse(http.StatusForbidden)
	}

	var res ResponseData
	res.MustWriteTemplate("forum_post_edit.html", forumPostEditData{
		BaseData:  getBaseData(c, "Editing post"),
		Thread:    templates.ThreadToTemplate(category.Slug, thread, nil, nil),
		SubmitUrl: tcnurl.BuildForumPostEdit(category.Slug, thread.ID, post.ID),
		Content:   post.Content,
	})
	return res
}

func ForumPostEditSubmit(c *RequestContext) ResponseData {
	category, thread, post, err := fetchPostFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	if !perm.CanModifyPost(c.CurrentUser, post) {
		return c.ErrorResponse(http.StatusForbidden)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	content := formValues.Get("content")

	_, err = tcndata.EditPost(c, c.Conn, post.ID, content)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			baseData := getBaseData(c, "Editing post")
			baseData.AddImmediateNotice("failure", msg)
			var res ResponseData
			res.StatusCode = http.StatusBadRequest
			res.MustWriteTemplate("forum_post_edit.html", forumPostEditData{
				BaseData:  baseData,
				Thread:    templates.ThreadToTemplate(category.Slug, thread, nil, nil),
				SubmitUrl: tcnurl.BuildForumPostEdit(category.Slug, thread.ID, post.ID),
				Content:   content,
			})
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to edit post"))
	}

	return c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
}

func ForumPostDeleteSubmit(c *RequestContext) ResponseData {
	category, thread, post, err := fetchPostFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	if !perm.CanModifyPost(c.CurrentUser, post) {
		return c.ErrorResponse(http.StatusForbidden)
	}

	err = tcndata.DeletePost(c, c.Conn, thread.ID, post.ID)
	if err != nil {
		if errors.Is(err, tcndata.ErrDeleteOpeningPost) {
			res := c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
			res.AddFutureNotice("failure", "The opening post cannot be deleted. Delete the whole thread instead.")
			return res
		}
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete post"))
	}

	res := c.Redirect(tcnurl.BuildForumThread(category.Slug, thread.ID, 1), http.StatusSeeOther)
	res.AddFutureNotice("success", "The post was deleted.")
	return res
}

func ForumThreadDeleteSubmit(c *RequestContext) ResponseData {
	category, thread, err := fetchCategoryAndThreadFromParams(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	err = tcndata.DeleteThread(c, c.Conn, thread.ID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete thread"))
	}

	res := c.Redirect(tcnurl.BuildForumCategory(category.Slug, 1), http.StatusSeeOther)
	res.AddFutureNotice("success", "The thread and all its posts were deleted.")
	return res
}

func fetchCategoryBySlugParam(c *RequestContext) (*models.Category, error) {
	return tcndata.FetchCategory(c, c.Conn, c.PathParams["catslug"])
}

// Fetches the category and thread named in the path, making sure the thread
// actually belongs to the category so posts cannot be addressed through the
// wrong URL.
func fetchCategoryAndThreadFromParams(c *RequestContext) (*models.Category, *models.Thread, error) {
	category, err := fetchCategoryBySlugParam(c)
	if err != nil {
		return nil, nil, err
	}

	threadID, err := strconv.Atoi(c.PathParams["threadid"])
	if err != nil {
		return nil, nil, db.NotFound
	}

	thread, err := tcndata.FetchThread(c, c.Conn, threadID)
	if err != nil {
		return nil, nil, err
	}
	if thread.CategoryID != category.ID {
		return nil, nil, db.NotFound
	}

	return category, thread, nil
}

func fetchPostFromParams(c *RequestContext) (*models.Category, *models.Thread, *models.Post, error) {
	category, thread, err := fetchCategoryAndThreadFromParams(c)
	if err != nil {
		return nil, nil, nil, err
	}

	postID, err := strconv.Atoi(c.PathParams["postid"])
	if err != nil {
		return nil, nil, nil, db.NotFound
	}

	post, err := tcndata.FetchPost(c, c.Conn, postID)
	if err != nil {
		return nil, nil, nil, err
	}
	if post.ThreadID != thread.ID {
		return nil, nil, nil, db.NotFound
	}

	return category, thread, post, nil
}

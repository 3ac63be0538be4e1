package website

import (
	"errors"
	"net/http"
	"strings"

	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/parsing"
	"git.teamcore.network/tcn/tcn/src/perm"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

type wikiIndexData struct {
	templates.BaseData
	Pages     []templates.WikiPage
	CanCreate bool
}

func WikiIndex(c *RequestContext) ResponseData {
	pages, err := tcndata.FetchWikiPages(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch wiki pages"))
	}

	templatePages := make([]templates.WikiPage, len(pages))
	for i, page := range pages {
		templatePages[i] = templates.WikiPageToTemplate(page)
	}

	var res ResponseData
	res.MustWriteTemplate("wiki_index.html", wikiIndexData{
		BaseData:  getBaseData(c, "Wiki"),
		Pages:     templatePages,
		CanCreate: perm.Check(c.CurrentUser, perm.ActionCreateWikiPage, nil),
	})
	return res
}

type wikiPageData struct {
	templates.BaseData
	Page    templates.WikiPage
	CanEdit bool
}

func WikiPage(c *RequestContext) ResponseData {
	page, err := fetchWikiPageBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	templatePage := templates.WikiPageToTemplate(page)
	templatePage.Content = parsing.ParseMarkdown(page.Content, parsing.RealMarkdown)

	var res ResponseData
	res.MustWriteTemplate("wiki_page.html", wikiPageData{
		BaseData: getBaseDataWithCrumbs(c, page.Title, []templates.Breadcrumb{
			{Name: "Wiki", Url: tcnurl.BuildWikiIndex()},
		}),
		Page:    templatePage,
		CanEdit: perm.Check(c.CurrentUser, perm.ActionEditWikiPage, nil),
	})
	return res
}

type wikiEditData struct {
	templates.BaseData
	Page      templates.WikiPage
	IsNew     bool
	SubmitUrl string

	Slug    string
	Title   string
	Content string
	Comment string
}

func WikiNewPage(c *RequestContext) ResponseData {
	var res ResponseData
	res.MustWriteTemplate("wiki_edit.html", wikiEditData{
		BaseData:  getBaseData(c, "New wiki page"),
		IsNew:     true,
		SubmitUrl: tcnurl.BuildWikiNew(),
	})
	return res
}

func WikiNewPageSubmit(c *RequestContext) ResponseData {
	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	slug := strings.TrimSpace(formValues.Get("slug"))
	title := strings.TrimSpace(formValues.Get("title"))
	content := formValues.Get("content")

	page, err := tcndata.CreateWikiPage(c, c.Conn, c.CurrentUser.ID, slug, title, content)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			baseData := getBaseData(c, "New wiki page")
			baseData.AddImmediateNotice("failure", msg)
			var res ResponseData
			res.StatusCode = http.StatusBadRequest
			res.MustWriteTemplate("wiki_edit.html", wikiEditData{
				BaseData:  baseData,
				IsNew:     true,
				SubmitUrl: tcnurl.BuildWikiNew(),
				Slug:      slug,
				Title:     title,
				Content:   content,
			})
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create wiki page"))
	}

	return c.Redirect(tcnurl.BuildWikiPage(page.Slug), http.StatusSeeOther)
}

func WikiEditPage(c *RequestContext) ResponseData {
	page, err := fetchWikiPageBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.MustWriteTemplate("wiki_edit.html", wikiEditData{
		BaseData:  getBaseData(c, "Editing "+page.Title),
		Page:      templates.WikiPageToTemplate(page),
		SubmitUrl: tcnurl.BuildWikiEdit(page.Slug),
		Slug:      page.Slug,
		Title:     page.Title,
		Content:   page.Content,
	})
	return res
}

func WikiEditPageSubmit(c *RequestContext) ResponseData {
	page, err := fetchWikiPageBySlugParam(c)
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

	slug := strings.TrimSpace(formValues.Get("slug"))
	title := strings.TrimSpace(formValues.Get("title"))
	content := formValues.Get("content")
	comment := strings.TrimSpace(formValues.Get("comment"))

	updated, err := tcndata.EditWikiPage(c, c.Conn, page.ID, c.CurrentUser.ID, slug, title, content, comment)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			baseData := getBaseData(c, "Editing "+page.Title)
			baseData.AddImmediateNotice("failure", msg)
			var res ResponseData
			res.StatusCode = http.StatusBadRequest
			res.MustWriteTemplate("wiki_edit.html", wikiEditData{
				BaseData:  baseData,
				Page:      templates.WikiPageToTemplate(page),
				SubmitUrl: tcnurl.BuildWikiEdit(page.Slug),
				Slug:      slug,
				Title:     title,
				Content:   content,
				Comment:   comment,
			})
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to edit wiki page"))
	}

	// The slug may have just changed; send the editor to wherever the page
	// lives now.
	return c.Redirect(tcnurl.BuildWikiPage(updated.Slug), http.StatusSeeOther)
}

type wikiHistoryData struct {
	templates.BaseData
	Page      templates.WikiPage
	Revisions []templates.WikiRevision
}

func WikiHistory(c *RequestContext) ResponseData {
	page, err := fetchWikiPageBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	revisions, err := tcndata.FetchWikiRevisions(c, c.Conn, page.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch wiki revisions"))
	}

	templateRevisions := make([]templates.WikiRevision, len(revisions))
	for i, rev := range revisions {
		templateRevisions[i] = templates.WikiRevisionToTemplate(rev.Revision, rev.Editor)
	}

	var res ResponseData
	res.MustWriteTemplate("wiki_history.html", wikiHistoryData{
		BaseData: getBaseDataWithCrumbs(c, "History of "+page.Title, []templates.Breadcrumb{
			{Name: "Wiki", Url: tcnurl.BuildWikiIndex()},
			{Name: page.Title, Url: tcnurl.BuildWikiPage(page.Slug)},
		}),
		Page:      templates.WikiPageToTemplate(page),
		Revisions: templateRevisions,
	})
	return res
}

func WikiDeletePageSubmit(c *RequestContext) ResponseData {
	page, err := fetchWikiPageBySlugParam(c)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	err = tcndata.DeleteWikiPage(c, c.Conn, page.ID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete wiki page"))
	}

	res := c.Redirect(tcnurl.BuildWikiIndex(), http.StatusSeeOther)
	res.AddFutureNotice("success", "The page and its history were deleted.")
	return res
}

func fetchWikiPageBySlugParam(c *RequestContext) (*models.WikiPage, error) {
	return tcndata.FetchWikiPage(c, c.Conn, c.PathParams["slug"])
}

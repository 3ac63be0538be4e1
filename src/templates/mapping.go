package templates

import (
	"html/template"

	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
)

func UserToTemplate(u *models.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		RoleName: u.RoleName(),

		IsModerator: u.IsModerator(),
		IsAdmin:     u.IsAdmin(),

		DateJoined: u.DateJoined,
	}
}

func RoleToTemplate(r *models.Role) Role {
	return Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// Content is left empty; handlers render markdown themselves and only for the
// views that show it.
func WikiPageToTemplate(p *models.WikiPage) WikiPage {
	return WikiPage{
		Slug:  p.Slug,
		Title: p.Title,

		CreatedAt:      p.CreatedAt,
		LastModifiedAt: p.LastModifiedAt,

		Url:        tcnurl.BuildWikiPage(p.Slug),
		EditUrl:    tcnurl.BuildWikiEdit(p.Slug),
		HistoryUrl: tcnurl.BuildWikiHistory(p.Slug),
		DeleteUrl:  tcnurl.BuildWikiDelete(p.Slug),
	}
}

func WikiRevisionToTemplate(rev *models.WikiRevision, editor *models.User) WikiRevision {
	var editorUser *User
	if editor != nil {
		editorTmpl := UserToTemplate(editor)
		editorUser = &editorTmpl
	}
	return WikiRevision{
		Title:     rev.Title,
		Comment:   rev.Comment,
		Timestamp: rev.Timestamp,
		Editor:    editorUser,
	}
}

func CategoryToTemplate(c *models.Category) Category {
	return Category{
		Name:        c.Name,
		Description: c.Description,

		Url:       tcnurl.BuildForumCategory(c.Slug, 1),
		EditUrl:   tcnurl.BuildAdminCategoryEdit(c.ID),
		DeleteUrl: tcnurl.BuildAdminCategoryDelete(c.ID),
	}
}

func ThreadToTemplate(categorySlug string, t *models.Thread, author, lastPoster *models.User) Thread {
	var authorUser, lastPosterUser *User
	if author != nil {
		authorTmpl := UserToTemplate(author)
		authorUser = &authorTmpl
	}
	if lastPoster != nil {
		lastPosterTmpl := UserToTemplate(lastPoster)
		lastPosterUser = &lastPosterTmpl
	}

	return Thread{
		ID:    t.ID,
		Title: t.Title,

		Author:     authorUser,
		LastPoster: lastPosterUser,

		CreatedAt:  t.CreatedAt,
		LastPostAt: t.LastPostAt,

		Url:       tcnurl.BuildForumThread(categorySlug, t.ID, 1),
		DeleteUrl: tcnurl.BuildForumThreadDelete(categorySlug, t.ID),
	}
}

func PostToTemplate(categorySlug string, p *models.Post, author *models.User, contentHtml template.HTML) Post {
	var authorUser *User
	if author != nil {
		authorTmpl := UserToTemplate(author)
		authorUser = &authorTmpl
	}

	return Post{
		ID: p.ID,

		Author:  authorUser,
		Content: contentHtml,

		PostDate: p.CreatedAt,

		Url:       tcnurl.BuildForumThread(categorySlug, p.ThreadID, 1),
		EditUrl:   tcnurl.BuildForumPostEdit(categorySlug, p.ThreadID, p.ID),
		DeleteUrl: tcnurl.BuildForumPostDelete(categorySlug, p.ThreadID, p.ID),
	}
}

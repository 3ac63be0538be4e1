package website

import (
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

func getBaseData(c *RequestContext, title string) templates.BaseData {
	return getBaseDataWithCrumbs(c, title, nil)
}

func getBaseDataWithCrumbs(c *RequestContext, title string, breadcrumbs []templates.Breadcrumb) templates.BaseData {
	var templateUser *templates.User
	if c.CurrentUser != nil {
		u := templates.UserToTemplate(c.CurrentUser)
		templateUser = &u
	}

	return templates.BaseData{
		Title:       title,
		Breadcrumbs: breadcrumbs,

		CurrentUrl:   c.FullUrl(),
		LoginPageUrl: tcnurl.BuildLogin(c.FullUrl()),

		User:    templateUser,
		Notices: getNoticesFromCookie(c),
	}
}

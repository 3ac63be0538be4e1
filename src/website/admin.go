package website

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"git.teamcore.network/tcn/tcn/src/auth"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/parsing"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

type adminDashboardData struct {
	templates.BaseData
	NumUsers   int
	NumTickets int
}

func AdminDashboard(c *RequestContext) ResponseData {
	numUsers, err := tcndata.CountUsers(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count users"))
	}

	tickets, err := tcndata.FetchTickets(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch tickets"))
	}
	numNew := 0
	for _, ticket := range tickets {
		if ticket.Status == models.TicketStatusNew {
			numNew++
		}
	}

	var res ResponseData
	res.MustWriteTemplate("admin_dashboard.html", adminDashboardData{
		BaseData:   getBaseData(c, "Admin"),
		NumUsers:   numUsers,
		NumTickets: numNew,
	})
	return res
}

type adminUsersData struct {
	templates.BaseData
	Users []templates.User
	Roles []templates.Role
}

func AdminUsers(c *RequestContext) ResponseData {
	users, err := tcndata.FetchUsers(c, c.Conn, tcndata.UsersQuery{})
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch users"))
	}
	roles, err := tcndata.FetchRoles(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch roles"))
	}

	templateUsers := make([]templates.User, len(users))
	for i, user := range users {
		templateUsers[i] = templates.UserToTemplate(user)
	}
	templateRoles := make([]templates.Role, len(roles))
	for i, role := range roles {
		templateRoles[i] = templates.RoleToTemplate(role)
	}

	var res ResponseData
	res.MustWriteTemplate("admin_users.html", adminUsersData{
		BaseData: getBaseData(c, "Users"),
		Users:    templateUsers,
		Roles:    templateRoles,
	})
	return res
}

func AdminUserCreateSubmit(c *RequestContext) ResponseData {
	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}
	roleID, err := strconv.Atoi(formValues.Get("role_id"))
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "role_id must be a number"))
	}

	form := registerForm{
		Username: strings.TrimSpace(formValues.Get("username")),
		Email:    strings.TrimSpace(formValues.Get("email")),
		Password: formValues.Get("password"),
	}
	fail := func(msg string) ResponseData {
		res := c.Redirect(tcnurl.BuildAdminUsers(), http.StatusSeeOther)
		res.AddFutureNotice("failure", msg)
		return res
	}
	if err := validateForm(form); err != nil {
		return fail(formErrorMessage(err))
	}

	user, err := tcndata.CreateUser(c, c.Conn, form.Username, form.Email, auth.HashPassword(form.Password).String(), roleID)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			return fail(msg)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create user"))
	}

	res := c.Redirect(tcnurl.BuildAdminUsers(), http.StatusSeeOther)
	res.AddFutureNotice("success", fmt.Sprintf("Created user %s.", user.Username))
	return res
}

func AdminUserRoleSubmit(c *RequestContext) ResponseData {
	userID, err := strconv.Atoi(c.PathParams["userid"])
	if err != nil {
		return FourOhFour(c)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}
	roleID, err := strconv.Atoi(formValues.Get("role_id"))
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "role_id must be a number"))
	}

	err = tcndata.ChangeUserRole(c, c.Conn, userID, roleID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to change user role"))
	}

	res := c.Redirect(tcnurl.BuildAdminUsers(), http.StatusSeeOther)
	res.AddFutureNotice("success", "Role updated. It takes effect on the user's next request.")
	return res
}

type adminRolesData struct {
	templates.BaseData
	Roles []templates.Role
}

func AdminRoles(c *RequestContext) ResponseData {
	roles, err := tcndata.FetchRoles(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch roles"))
	}

	templateRoles := make([]templates.Role, len(roles))
	for i, role := range roles {
		templateRoles[i] = templates.RoleToTemplate(role)
	}

	var res ResponseData
	res.MustWriteTemplate("admin_roles.html", adminRolesData{
		BaseData: getBaseData(c, "Roles"),
		Roles:    templateRoles,
	})
	return res
}

func AdminRoleCreateSubmit(c *RequestContext) ResponseData {
	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	name := strings.TrimSpace(formValues.Get("name"))
	description := strings.TrimSpace(formValues.Get("description"))

	_, err = tcndata.CreateRole(c, c.Conn, name, description)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			res := c.Redirect(tcnurl.BuildAdminRoles(), http.StatusSeeOther)
			res.AddFutureNotice("failure", msg)
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create role"))
	}

	return c.Redirect(tcnurl.BuildAdminRoles(), http.StatusSeeOther)
}

type adminCategoriesData struct {
	templates.BaseData
	Categories []templates.Category
}

func AdminCategories(c *RequestContext) ResponseData {
	categories, err := tcndata.FetchCategories(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch categories"))
	}

	templateCategories := make([]templates.Category, len(categories))
	for i, category := range categories {
		templateCategories[i] = templates.CategoryToTemplate(category)
	}

	var res ResponseData
	res.MustWriteTemplate("admin_categories.html", adminCategoriesData{
		BaseData:   getBaseData(c, "Forum categories"),
		Categories: templateCategories,
	})
	return res
}

func AdminCategoryCreateSubmit(c *RequestContext) ResponseData {
	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	name := strings.TrimSpace(formValues.Get("name"))
	description := strings.TrimSpace(formValues.Get("description"))

	_, err = tcndata.CreateCategory(c, c.Conn, name, description)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			res := c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
			res.AddFutureNotice("failure", msg)
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create category"))
	}

	return c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
}

func AdminCategoryEditSubmit(c *RequestContext) ResponseData {
	categoryID, err := strconv.Atoi(c.PathParams["catid"])
	if err != nil {
		return FourOhFour(c)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	name := strings.TrimSpace(formValues.Get("name"))
	description := strings.TrimSpace(formValues.Get("description"))

	_, err = tcndata.UpdateCategory(c, c.Conn, categoryID, name, description)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		if msg := formErrorMessage(err); msg != "" {
			res := c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
			res.AddFutureNotice("failure", msg)
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to update category"))
	}

	return c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
}

func AdminCategoryDeleteSubmit(c *RequestContext) ResponseData {
	categoryID, err := strconv.Atoi(c.PathParams["catid"])
	if err != nil {
		return FourOhFour(c)
	}

	err = tcndata.DeleteCategory(c, c.Conn, categoryID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		if msg := formErrorMessage(err); msg != "" {
			res := c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
			res.AddFutureNotice("failure", msg)
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to delete category"))
	}

	res := c.Redirect(tcnurl.BuildAdminCategories(), http.StatusSeeOther)
	res.AddFutureNotice("success", "The category was deleted.")
	return res
}

type adminTicket struct {
	*models.SupportTicket
	MessageHtml template.HTML
}

type adminTicketsData struct {
	templates.BaseData
	Tickets  []adminTicket
	Statuses []models.TicketStatus
}

func AdminTickets(c *RequestContext) ResponseData {
	tickets, err := tcndata.FetchTickets(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch tickets"))
	}

	templateTickets := make([]adminTicket, len(tickets))
	for i, ticket := range tickets {
		templateTickets[i] = adminTicket{
			SupportTicket: ticket,
			MessageHtml:   parsing.ParseMarkdown(ticket.Message, parsing.StrictMarkdown),
		}
	}

	var res ResponseData
	res.MustWriteTemplate("admin_tickets.html", adminTicketsData{
		BaseData: getBaseData(c, "Support tickets"),
		Tickets:  templateTickets,
		Statuses: []models.TicketStatus{models.TicketStatusNew, models.TicketStatusOpen, models.TicketStatusClosed},
	})
	return res
}

func AdminTicketStatusSubmit(c *RequestContext) ResponseData {
	ticketID, err := strconv.Atoi(c.PathParams["ticketid"])
	if err != nil {
		return FourOhFour(c)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	status := models.TicketStatus(formValues.Get("status"))
	switch status {
	case models.TicketStatusNew, models.TicketStatusOpen, models.TicketStatusClosed:
	default:
		return c.ErrorResponse(http.StatusBadRequest, oops.New(nil, "unknown ticket status: %s", status))
	}

	err = tcndata.UpdateTicketStatus(c, c.Conn, ticketID, status)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to update ticket status"))
	}

	return c.Redirect(tcnurl.BuildAdminTickets(), http.StatusSeeOther)
}

package website

import (
	"context"
	"net/http"

	"git.teamcore.network/tcn/tcn/src/email"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

type supportPageData struct {
	templates.BaseData
	Email   string
	Subject string
	Message string
}

func SupportPage(c *RequestContext) ResponseData {
	data := supportPageData{
		BaseData: getBaseData(c, "Contact support"),
	}
	if c.CurrentUser != nil {
		data.Email = c.CurrentUser.Email
	}

	var res ResponseData
	res.MustWriteTemplate("support.html", data)
	return res
}

type supportForm struct {
	Email   string `validate:"required,email"`
	Subject string `validate:"required,max=200"`
	Message string `validate:"required,max=20000"`
}

func SupportSubmit(c *RequestContext) ResponseData {
	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	form := supportForm{
		Email:   formValues.Get("email"),
		Subject: formValues.Get("subject"),
		Message: formValues.Get("message"),
	}

	if err := validateForm(form); err != nil {
		if msg := formErrorMessage(err); msg != "" {
			baseData := getBaseData(c, "Contact support")
			baseData.AddImmediateNotice("failure", msg)
			var res ResponseData
			res.StatusCode = http.StatusBadRequest
			res.MustWriteTemplate("support.html", supportPageData{
				BaseData: baseData,
				Email:    form.Email,
				Subject:  form.Subject,
				Message:  form.Message,
			})
			return res
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var userID *int
	if c.CurrentUser != nil {
		userID = &c.CurrentUser.ID
	}

	ticket, err := tcndata.CreateTicket(c, c.Conn, userID, form.Email, form.Subject, form.Message)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to create support ticket"))
	}

	// The notification is best-effort; the ticket is already saved. It must
	// not inherit the request context or cancellation would kill the retries.
	email.SendTicketNotification(context.Background(), ticket, c.CurrentUser)

	return c.Redirect(tcnurl.BuildSupportThanks(ticket.Reference.String()), http.StatusSeeOther)
}

type supportThanksData struct {
	templates.BaseData
	Reference string
}

func SupportThanks(c *RequestContext) ResponseData {
	var res ResponseData
	res.MustWriteTemplate("support_thanks.html", supportThanksData{
		BaseData:  getBaseData(c, "Thanks"),
		Reference: c.Req.URL.Query().Get("ref"),
	})
	return res
}

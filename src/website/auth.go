package website

import (
	"errors"
	"net/http"
	"time"

	"git.teamcore.network/tcn/tcn/src/auth"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/logging"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"git.teamcore.network/tcn/tcn/src/templates"
)

type registerPageData struct {
	templates.BaseData
	Username string
	Email    string
}

func RegisterPage(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	}

	var res ResponseData
	res.MustWriteTemplate("register.html", registerPageData{
		BaseData: getBaseData(c, "Register"),
	})
	return res
}

type registerForm struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func RegisterSubmit(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	form := registerForm{
		Username: formValues.Get("username"),
		Email:    formValues.Get("email"),
		Password: formValues.Get("password"),
	}

	rerender := func(message string) ResponseData {
		baseData := getBaseData(c, "Register")
		baseData.AddImmediateNotice("failure", message)
		var res ResponseData
		res.StatusCode = http.StatusBadRequest
		res.MustWriteTemplate("register.html", registerPageData{
			BaseData: baseData,
			Username: form.Username,
			Email:    form.Email,
		})
		return res
	}

	if err := validateForm(form); err != nil {
		if msg := formErrorMessage(err); msg != "" {
			return rerender(msg)
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	user, err := tcndata.RegisterUser(c, c.Conn, form.Username, form.Email, form.Password)
	if err != nil {
		if msg := formErrorMessage(err); msg != "" {
			return rerender(msg)
		}
		if errors.Is(err, tcndata.ErrRoleMissing) {
			return c.ErrorResponse(http.StatusInternalServerError, err)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to register user"))
	}

	res := c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	res.AddFutureNotice("success", "Welcome to Team Core!")
	err = loginUser(c, user, &res)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}
	return res
}

type loginPageData struct {
	templates.BaseData
	RedirectUrl string
}

func LoginPage(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	}

	var res ResponseData
	res.MustWriteTemplate("login.html", loginPageData{
		BaseData:    getBaseData(c, "Log in"),
		RedirectUrl: c.Req.URL.Query().Get("redirect"),
	})
	return res
}

func LoginSubmit(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	}

	formValues, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, oops.New(err, "request must contain form data"))
	}

	username := formValues.Get("username")
	password := formValues.Get("password")
	redirect := formValues.Get("redirect")
	if redirect == "" {
		redirect = tcnurl.BuildHomepage()
	}

	badCredentials := func() ResponseData {
		baseData := getBaseData(c, "Log in")
		baseData.AddImmediateNotice("failure", "Incorrect username or password.")
		var res ResponseData
		res.StatusCode = http.StatusUnauthorized
		res.MustWriteTemplate("login.html", loginPageData{
			BaseData:    baseData,
			RedirectUrl: redirect,
		})
		return res
	}

	if username == "" || password == "" {
		return badCredentials()
	}

	user, err := tcndata.FetchUserByUsername(c, c.Conn, username)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return badCredentials()
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to look up user by username"))
	}

	success, err := tryLogin(c, user, password)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}
	if !success {
		return badCredentials()
	}

	res := c.Redirect(redirect, http.StatusSeeOther)
	err = loginUser(c, user, &res)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}
	return res
}

func Logout(c *RequestContext) ResponseData {
	sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
	if err == nil {
		// clear the session from the db immediately, no expiration
		err := auth.DeleteSession(c, c.Conn, sessionCookie.Value)
		if err != nil {
			logging.Error().Err(err).Msg("failed to delete session on logout")
		}
	}

	res := c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
	res.SetCookie(auth.DeleteSessionCookie)

	return res
}

func tryLogin(c *RequestContext, user *models.User, password string) (bool, error) {
	hashed, err := auth.ParsePasswordString(user.Password)
	if err != nil {
		return false, oops.New(err, "failed to parse password string")
	}

	passwordsMatch, err := auth.CheckPassword(password, hashed)
	if err != nil {
		return false, oops.New(err, "failed to check password against hash")
	}

	return passwordsMatch, nil
}

func loginUser(c *RequestContext, user *models.User, responseData *ResponseData) error {
	session, err := auth.CreateSession(c, c.Conn, user.ID)
	if err != nil {
		return oops.New(err, "failed to create session")
	}

	_, err = c.Conn.Exec(c,
		`
		UPDATE tcn_user
		SET last_login = $1
		WHERE id = $2
		`,
		time.Now(),
		user.ID,
	)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to update last_login for user")
	}

	responseData.SetCookie(auth.NewSessionCookie(session))
	return nil
}

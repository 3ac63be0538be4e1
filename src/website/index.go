package website

import (
	"net/http"
)

func Index(c *RequestContext) ResponseData {
	var res ResponseData
	res.MustWriteTemplate("index.html", getBaseData(c, "Home"))
	return res
}

func FourOhFour(c *RequestContext) ResponseData {
	return c.ErrorResponse(http.StatusNotFound)
}

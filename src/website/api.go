package website

import (
	"net/http"

	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/tcndata"
)

type serverStatus struct {
	Status     string `json:"status"`
	NumUsers   int    `json:"num_users"`
	NumThreads int    `json:"num_threads"`
}

// A tiny health and stats endpoint for monitoring.
func APIServerStatus(c *RequestContext) ResponseData {
	numUsers, err := tcndata.CountUsers(c, c.Conn)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count users"))
	}
	numThreads, err := tcndata.CountThreads(c, c.Conn, 0)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to count threads"))
	}

	var res ResponseData
	res.WriteJson(serverStatus{
		Status:     "ok",
		NumUsers:   numUsers,
		NumThreads: numThreads,
	})
	return res
}

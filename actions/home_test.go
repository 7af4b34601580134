package actions

import (
	"net/http"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()

	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "Welcome to the")
}

func (as *ActionSuite) Test_HomeHandler_noAuthRequired() {
	// the home route must stay reachable without a bearer token
	req := as.JSON("/")
	req.Headers["content-type"] = "application/json"
	res := req.Get()

	as.Equal(http.StatusOK, res.Code)
}

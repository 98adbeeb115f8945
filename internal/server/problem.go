package server

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/valyala/fasthttp"
)

// Problem is an RFC 7807 error body.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const problemContentType = "application/problem+json"

// requestError marks a failure caused by the request itself.
type requestError struct {
	title string
	err   error
}

func (e *requestError) Error() string { return e.title + ": " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(title string, err error) error {
	return &requestError{title: title, err: err}
}

// problemFor maps an error onto a status and problem body.
func problemFor(err error) Problem {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return Problem{
			Type:   "about:blank",
			Title:  reqErr.title,
			Status: fasthttp.StatusBadRequest,
			Detail: reqErr.err.Error(),
		}
	case errors.Is(err, calculation.ErrConfiguration):
		return Problem{
			Type:   "about:blank",
			Title:  "Invalid reference data",
			Status: fasthttp.StatusBadRequest,
			Detail: err.Error(),
		}
	default:
		return Problem{
			Type:   "about:blank",
			Title:  "Projection failed",
			Status: fasthttp.StatusInternalServerError,
			Detail: err.Error(),
		}
	}
}

func writeProblem(ctx *fasthttp.RequestCtx, p Problem) {
	body, err := json.Marshal(p)
	if err != nil {
		body = []byte(fmt.Sprintf(`{"type":"about:blank","title":%q,"status":%d}`, p.Title, p.Status))
	}
	ctx.SetStatusCode(p.Status)
	ctx.SetContentType(problemContentType)
	ctx.SetBody(body)
}

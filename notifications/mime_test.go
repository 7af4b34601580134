package notifications

import (
	"github.com/motorsure/motorsure-api/domain"
)

func (ts *TestSuite) TestRawEmail() {
	raw := rawEmail(
		"to@example.com",
		domain.Env.EmailFromAddress,
		"test subject",
		`<html><body><p>Your policy POL12345678 has been approved.</p></body></html>`)

	s := string(raw)
	ts.Contains(s, "To: to@example.com")
	ts.Contains(s, "Subject: test subject")
	ts.Contains(s, "multipart/alternative")
	ts.Contains(s, "text/plain; charset=utf-8")
	ts.Contains(s, "text/html; charset=utf-8")
	ts.Contains(s, "POL12345678")
}

package notifications

import (
	"github.com/motorsure/motorsure-api/domain"
)

func (ts *TestSuite) TestSend() {
	nickname := "nickname"
	const body = "Your quotation QTE12345678 is ready.\n\nPay by bank transfer."
	msg := Message{
		FromName:  "from name",
		FromEmail: domain.EmailFromAddress(&nickname),
		ToName:    "to name",
		ToEmail:   "to@example.com",
		Subject:   "Policy quotation available",
		Body:      body,
	}
	var emailService EmailService
	var testService DummyEmailService
	emailService = &testService

	err := emailService.Send(msg)
	ts.NoError(err, "error sending message")

	n := len(testService.GetSentMessages())
	ts.Require().Equal(1, n, "incorrect number of messages sent")

	ts.Equal(body, testService.GetLastBody())
	ts.Equal("to@example.com", testService.GetLastToEmail())
}

func (ts *TestSuite) Test_htmlBody() {
	msg := Message{Body: "First line\nsecond line\n\nNew paragraph with <angle brackets>"}
	got := htmlBody(msg)

	ts.Contains(got, "<p>First line<br>second line</p>")
	ts.Contains(got, "&lt;angle brackets&gt;")
	ts.NotContains(got, "<angle brackets>")
}

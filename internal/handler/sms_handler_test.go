package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSMSService struct {
	reply    string
	ok       bool
	lastFrom string
	lastBody string
}

func (f *fakeSMSService) HandleIncomingMessage(_ context.Context, fromNumber, messageBody string) (string, bool) {
	f.lastFrom = fromNumber
	f.lastBody = messageBody
	return f.reply, f.ok
}

func postSMSWebhook(t *testing.T, svc *fakeSMSService, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/sms", NewSMSHandler(svc).HandleIncoming)

	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleIncoming_KnownSenderGetsReplyEnvelope(t *testing.T) {
	svc := &fakeSMSService{reply: "The gate code is 4521.", ok: true}
	form := url.Values{"From": {"+15550100"}, "Body": {"whats the gate code"}}

	w := postSMSWebhook(t, svc, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Message>The gate code is 4521.</Message>")
	assert.Equal(t, "+15550100", svc.lastFrom)
	assert.Equal(t, "whats the gate code", svc.lastBody)
}

func TestHandleIncoming_UnknownSenderGetsEmptyEnvelope(t *testing.T) {
	svc := &fakeSMSService{ok: false}
	form := url.Values{"From": {"+19995550000"}, "Body": {"hello"}}

	w := postSMSWebhook(t, svc, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Response></Response>")
	assert.NotContains(t, w.Body.String(), "<Message>")
}

func TestHandleIncoming_MissingFieldsStillAcknowledged(t *testing.T) {
	// The gateway retries on non-200; even a payload with no fields must be
	// answered with a well-formed envelope.
	svc := &fakeSMSService{ok: false}

	w := postSMSWebhook(t, svc, url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Response></Response>")
}

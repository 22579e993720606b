// Package handler contains the HTTP controller logic.
package handler

import (
	"net/http"

	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/twiml"

	"github.com/gin-gonic/gin"
)

// SMSHandler handles the inbound SMS webhook from the gateway.
type SMSHandler struct {
	smsService service.SMSService
}

// NewSMSHandler creates a new SMSHandler.
func NewSMSHandler(smsService service.SMSService) *SMSHandler {
	return &SMSHandler{smsService: smsService}
}

// smsWebhookRequest is the form-encoded inbound payload.
type smsWebhookRequest struct {
	From string `form:"From"`
	Body string `form:"Body"`
}

// HandleIncoming processes one inbound SMS and answers with the gateway XML
// envelope. The response is always HTTP 200 with well-formed XML: a reply
// message for known senders, an empty envelope otherwise.
func (h *SMSHandler) HandleIncoming(c *gin.Context) {
	var req smsWebhookRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warnf("malformed SMS webhook payload: %v", err)
		c.Data(http.StatusOK, "text/xml", []byte(twiml.Empty()))
		return
	}

	log.Infof("incoming SMS from %s: %s", req.From, req.Body)

	reply, ok := h.smsService.HandleIncomingMessage(c.Request.Context(), req.From, req.Body)
	if !ok {
		c.Data(http.StatusOK, "text/xml", []byte(twiml.Empty()))
		return
	}

	c.Data(http.StatusOK, "text/xml", []byte(twiml.Reply(reply)))
}

// Package twiml renders the messaging response envelope expected by the SMS
// gateway (Twilio TwiML).
package twiml

import (
	"bytes"
	"encoding/xml"
)

// MessagingResponse is the outbound reply envelope. An empty envelope (no
// Message element) is a valid acknowledgment that sends nothing back.
type MessagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// Reply renders an envelope carrying body as the SMS reply text.
func Reply(body string) string {
	return render(MessagingResponse{Message: body})
}

// Empty renders an empty envelope: acknowledge the webhook, send nothing.
func Empty() string {
	return render(MessagingResponse{})
}

func render(resp MessagingResponse) string {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	// Marshaling a struct of strings cannot fail; keep the envelope well
	// formed regardless.
	if err := enc.Encode(resp); err != nil {
		return xml.Header + "<Response></Response>"
	}
	return buf.String()
}

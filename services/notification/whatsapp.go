package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultCountryCode = "+56"

// FormatWhatsAppNumber turns a local or E.164 number into a Twilio WhatsApp address.
// Numbers without a leading + are assumed to be Chilean.
func FormatWhatsAppNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = defaultCountryCode + phone
	}
	return "whatsapp:" + phone
}

// TwilioWhatsAppSender sends WhatsApp messages through the Twilio Messages API.
type TwilioWhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioWhatsAppSender returns a sender that fails with ErrChannelDisabled when credentials are missing.
func NewTwilioWhatsAppSender(accountSID, authToken, from string) *TwilioWhatsAppSender {
	s := &TwilioWhatsAppSender{from: FormatWhatsAppNumber(from)}
	if accountSID != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}
	return s
}

func (s *TwilioWhatsAppSender) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	if s.client == nil {
		return "", ErrChannelDisabled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(FormatWhatsAppNumber(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

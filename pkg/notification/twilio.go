package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioBaseURL = "https://api.twilio.com"

// TwilioSMS sends SMS through the Twilio Messages REST API.
type TwilioSMS struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewTwilioSMS creates a Twilio SMS sender for the given account and
// originating number.
func NewTwilioSMS(accountSID, authToken, from string) *TwilioSMS {
	return &TwilioSMS{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one message to the Messages endpoint and treats any non-2xx
// response as a failure.
func (t *TwilioSMS) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

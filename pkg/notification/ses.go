package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESEmail delivers notifications as plain-text email through AWS SES.
// Used for the admin new-order notification when SMS is not configured.
type SESEmail struct {
	client  *sesv2.Client
	sender  string
	subject string
}

// NewSESEmail builds an SES sender using the default AWS credential chain.
func NewSESEmail(ctx context.Context, sender string) (*SESEmail, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	return &SESEmail{
		client:  sesv2.NewFromConfig(cfg),
		sender:  sender,
		subject: "New pickup order",
	}, nil
}

func (s *SESEmail) Send(ctx context.Context, to, body string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(s.subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses: send email: %w", err)
	}
	return nil
}

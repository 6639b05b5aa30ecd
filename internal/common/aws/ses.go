// Package aws wraps the AWS SDK clients used for outbound mail and SMS
// alerts, keeping SDK construction and charset defaults out of the workers.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const defaultCharset = "UTF-8"

// SESClient sends outreach and alert email through Amazon SES.
type SESClient struct {
	client *ses.Client
}

func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESClient{client: ses.NewFromConfig(cfg)}, nil
}

// SendEmail forwards to SES after filling in the UTF-8 charset on any
// content block that omits it. Drafted emails carry operator-authored
// names and notes, so the charset always has to be explicit.
func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if input.Message != nil {
		applyCharset(input.Message.Subject)
		if input.Message.Body != nil {
			applyCharset(input.Message.Body.Text)
			applyCharset(input.Message.Body.Html)
		}
	}
	return s.client.SendEmail(ctx, input)
}

func applyCharset(content *types.Content) {
	if content != nil && content.Charset == nil {
		content.Charset = awssdk.String(defaultCharset)
	}
}

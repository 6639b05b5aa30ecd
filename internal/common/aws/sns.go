package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSClient publishes operator SMS alerts.
type SNSClient struct {
	client *sns.Client
}

func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input)
}

// SMSAttributes builds the message attributes for a direct-to-phone SMS.
// An empty sender id returns nil, which SNS treats as the account default.
func SMSAttributes(senderID string) map[string]types.MessageAttributeValue {
	if senderID == "" {
		return nil
	}
	return map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SenderID": {
			DataType:    awssdk.String("String"),
			StringValue: awssdk.String(senderID),
		},
	}
}

package relay

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/vovakirdan/skyward/internal/config"
)

const sesSubject = "Skyward redemption request"

// sesAPI is the subset of the SES client used by the relay.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES emails messages to an operator mailbox via Amazon SES.
type SES struct {
	client sesAPI
	from   string
	to     string
}

// NewSES loads AWS credentials from the default chain and creates an SES relay.
func NewSES(ctx context.Context, cfg config.SESConfig) (*SES, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("relay: load aws config: %w", err)
	}
	return newSESWithClient(sesv2.NewFromConfig(awsCfg), cfg.From, cfg.To), nil
}

func newSESWithClient(client sesAPI, from, to string) *SES {
	return &SES{client: client, from: from, to: to}
}

// Send emails text as a plain-text body.
func (s *SES) Send(ctx context.Context, text string) (Result, error) {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{s.to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(sesSubject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(text),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return Result{}, fmt.Errorf("relay: ses send: %w", err)
	}
	return Result{OK: true, Description: aws.ToString(out.MessageId)}, nil
}

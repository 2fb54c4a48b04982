package aws

import (
	"context"
	"log"

	"redfin-etl/pkg/resource"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

var Config aws.Config

func init() {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(resource.GetString("app.cloud.aws-region")),
	}

	// Check if LocalStack endpoint is configured
	if endpoint := resource.GetString("app.cloud.aws-endpoint"); endpoint != "" {
		options = append(options, config.WithBaseEndpoint(endpoint))
	}

	// Check if custom credentials are provided
	if accessKey := resource.GetString("app.cloud.aws-access-key-id"); accessKey != "" {
		secretKey := resource.GetString("app.cloud.aws-secret-access-key")
		if secretKey != "" {
			options = append(options, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
		}
	}
	// If no custom credentials are provided, AWS SDK will use default credential chain
	// (environment variables, IAM roles, etc.)

	cfg, err := config.LoadDefaultConfig(context.Background(), options...)

	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	Config = cfg
}

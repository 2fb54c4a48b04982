package aws

import (
	"redfin-etl/pkg/resource"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func NewS3Client() *s3.Client {
	return s3.NewFromConfig(Config, func(options *s3.Options) {
		// Path-style addressing is required for LocalStack
		options.UsePathStyle = resource.GetBool("app.cloud.aws-use-path-style")
	})
}

package helpers

import (
	"bytes"
	"fmt"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

// AddFileToS3 uploads a generated receipt and returns its public URL.
func AddFileToS3(ctx *config.AppContext, buffer *bytes.Buffer, key string) (string, error) {
	content := buffer.Bytes()

	_, err := s3.New(ctx.AwsS3).PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(ctx.Config.AwsS3.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", ctx.Config.AwsS3.S3Url, key), nil
}

package aws

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadAvatar stores an avatar image under a per-user key and returns
// its public URL. Re-uploading overwrites the previous avatar
func (s *S3Client) UploadAvatar(ctx context.Context, userID string, r io.Reader, contentType string) (string, error) {
	key := "avatars/" + userID

	uploader := manager.NewUploader(s.C)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to S3, %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", *s.Bucket, s.Region, key), nil
}

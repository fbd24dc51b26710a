package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists the Google service-account key uploaded for a
// workspace and hands back the path recorded on the workspace row.
type Storage interface {
	SaveCredentials(workspace string, fileHeader *multipart.FileHeader) (string, error)
	DeleteCredentials(workspace string) error
}

type LocalStorage struct {
	credentialsDir string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
}

func NewLocalStorage(credentialsDir string) *LocalStorage {
	return &LocalStorage{credentialsDir: credentialsDir}
}

func NewSpacesStorage(endpoint, region, bucket, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
	}, nil
}

var workspaceNamePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// one key file per workspace, replaced on re-upload
func credentialsFilename(workspace string) string {
	cleaned := workspaceNamePattern.ReplaceAllString(workspace, "")
	if cleaned == "" {
		cleaned = "workspace"
	}
	return fmt.Sprintf("%s_credentials.json", cleaned)
}

func (ls *LocalStorage) SaveCredentials(workspace string, fileHeader *multipart.FileHeader) (string, error) {
	filename := credentialsFilename(workspace)
	path := filepath.Join(ls.credentialsDir, filename)

	if err := os.MkdirAll(ls.credentialsDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create credentials directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			return
		}
	}(src)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer func(dst *os.File) {
		if err := dst.Close(); err != nil {
			return
		}
	}(dst)

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save credentials: %w", err)
	}

	log.Debug().Str("workspace", workspace).Str("path", path).Msg("stored credentials file")
	return path, nil
}

func (ls *LocalStorage) DeleteCredentials(workspace string) error {
	path := filepath.Join(ls.credentialsDir, credentialsFilename(workspace))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

func (ss *SpacesStorage) SaveCredentials(workspace string, fileHeader *multipart.FileHeader) (string, error) {
	filename := credentialsFilename(workspace)
	key := "credentials/" + filename

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			return
		}
	}(src)

	body, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(body)),
		ACL:         aws.String("private"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload credentials: %w", err)
	}

	log.Debug().Str("workspace", workspace).Str("key", key).Msg("stored credentials object")
	return key, nil
}

func (ss *SpacesStorage) DeleteCredentials(workspace string) error {
	key := "credentials/" + credentialsFilename(workspace)
	_, err := ss.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

// Copyright (C) 2025 Opsmate, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included
// in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name(s) of the above copyright
// holders shall not be used in advertising or otherwise to promote the
// sale, use or other dealings in this Software without prior written
// authorization.

// Package archive stores rendered feed documents in S3.
package archive

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	AWSConfig aws.Config
	Bucket    string
)

// Enabled reports whether archiving is configured.
func Enabled() bool {
	return Bucket != ""
}

func newS3Client() *s3.Client {
	return s3.NewFromConfig(AWSConfig, func(opts *s3.Options) {
		opts.EndpointOptions.UseDualStackEndpoint = aws.DualStackEndpointStateEnabled
		opts.DisableLogOutputChecksumValidationSkipped = true
	})
}

func objectKey(slug string) string {
	return "feeds/" + slug + ".atom"
}

// Put stores the channel's rendered Atom document.
func Put(ctx context.Context, slug string, data []byte) error {
	_, err := newS3Client().PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(Bucket),
		Key:         aws.String(objectKey(slug)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/atom+xml; charset=utf-8"),
	})
	return err
}

// Presign returns a time-limited URL for downloading the channel's most
// recently archived document.
func Presign(ctx context.Context, slug string) (string, error) {
	presigner := s3.NewPresignClient(newS3Client())
	presigned, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(Bucket),
		Key:    aws.String(objectKey(slug)),
	}, s3.WithPresignExpires(30*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/raywall/fast-sns/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConf_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("Static Credentials", func(t *testing.T) {
		cfg := &ClientConf{
			Region:      "us-west-2",
			Endpoint:    "http://localhost:9911",
			ReadTimeout: 3 * time.Second,
			Credentials: CredentialsConf{AccessKeyID: "AKID", SecretAccessKey: "s3cr3t", SessionToken: "tok"},
			Retry:       RetryConf{MaxAttempts: 2, Deadline: time.Minute, RetryableCodes: []string{"KMSThrottling"}},
		}

		opts, err := cfg.Options(ctx)
		require.NoError(t, err)
		assert.Equal(t, "us-west-2", opts.Region)
		assert.Equal(t, "http://localhost:9911", opts.Endpoint)
		assert.Equal(t, 3*time.Second, opts.ReadTimeout)
		assert.Equal(t, sns.RetryPolicy{MaxAttempts: 2, Deadline: time.Minute, RetryableCodes: []string{"KMSThrottling"}}, opts.Retry)

		creds, err := opts.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AKID", creds.AccessKeyID)
		assert.Equal(t, "tok", creds.SessionToken)
	})

	t.Run("Anonymous", func(t *testing.T) {
		cfg := &ClientConf{Region: "us-east-1", Credentials: CredentialsConf{Anonymous: true}}
		opts, err := cfg.Options(ctx)
		require.NoError(t, err)
		assert.IsType(t, aws.AnonymousCredentials{}, opts.Credentials)
	})

	t.Run("Default Chain", func(t *testing.T) {
		cfg := &ClientConf{Region: "us-east-1"}
		opts, err := cfg.Options(ctx)
		require.NoError(t, err)
		assert.Nil(t, opts.Credentials)
	})
}

func TestAsyncConf_AsyncOptions(t *testing.T) {
	opts := AsyncConf{Workers: 3, QueueSize: -1}.AsyncOptions()
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, -1, opts.QueueSize)
}

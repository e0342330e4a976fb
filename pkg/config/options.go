package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/raywall/fast-sns/pkg/awsutil"
	"github.com/raywall/fast-sns/sns"
)

// Options converte a configuração em sns.Options.
//
// Logger, métricas e tracing não são preenchidos aqui; quem monta o client
// completa esses campos com logger.Configure e observability.SetupMetrics.
func (c *ClientConf) Options(ctx context.Context) (sns.Options, error) {
	opts := sns.Options{
		Region:         c.Region,
		Endpoint:       c.Endpoint,
		MaxConnections: c.MaxConnections,
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		Retry:          c.Retry.Policy(),
	}

	creds := c.Credentials
	switch {
	case creds.Anonymous:
		opts.Credentials = aws.AnonymousCredentials{}
	case creds.AccessKeyID != "":
		opts.Credentials = credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
	case creds.SecretID != "":
		p, err := awsutil.NewSecretCredentialsProvider(ctx, c.Region, creds.SecretID, creds.SecretTTL)
		if err != nil {
			return sns.Options{}, fmt.Errorf("falha ao criar provedor de credenciais: %w", err)
		}
		opts.Credentials = p
	}
	return opts, nil
}

// Policy converte RetryConf em sns.RetryPolicy (zeros assumem os defaults do client).
func (r RetryConf) Policy() sns.RetryPolicy {
	return sns.RetryPolicy{
		MaxAttempts:        r.MaxAttempts,
		BaseDelay:          r.BaseDelay,
		ThrottledBaseDelay: r.ThrottledBaseDelay,
		MaxBackoff:         r.MaxBackoff,
		Deadline:           r.Deadline,
		RetryableCodes:     r.RetryableCodes,
	}
}

// AsyncOptions converte AsyncConf em sns.AsyncOptions.
func (a AsyncConf) AsyncOptions() sns.AsyncOptions {
	return sns.AsyncOptions{
		Workers:   a.Workers,
		QueueSize: a.QueueSize,
	}
}

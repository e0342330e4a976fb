package awsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretCredentialsProvider lê chaves de acesso guardadas no Secrets Manager.
//
// O segredo deve ser um JSON com access_key_id, secret_access_key e,
// opcionalmente, session_token. TTL define quando as credenciais expiram
// para que o aws.CredentialsCache volte a buscá-las (zero = não expiram).
type SecretCredentialsProvider struct {
	Client   SecretsClient
	SecretID string
	TTL      time.Duration
}

// NewSecretCredentialsProvider cria o provedor usando o Secrets Manager da região.
func NewSecretCredentialsProvider(ctx context.Context, region, secretID string, ttl time.Duration) (*SecretCredentialsProvider, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &SecretCredentialsProvider{
		Client:   secretsmanager.NewFromConfig(cfg),
		SecretID: secretID,
		TTL:      ttl,
	}, nil
}

type secretKeys struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
}

// Retrieve implementa aws.CredentialsProvider.
func (p *SecretCredentialsProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	raw, err := fetchSecretString(ctx, p.Client, p.SecretID)
	if err != nil {
		return aws.Credentials{}, err
	}

	var keys secretKeys
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return aws.Credentials{}, fmt.Errorf("segredo %s com formato inválido: %w", p.SecretID, err)
	}
	if keys.AccessKeyID == "" || keys.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("segredo %s sem access_key_id/secret_access_key", p.SecretID)
	}

	creds := aws.Credentials{
		AccessKeyID:     keys.AccessKeyID,
		SecretAccessKey: keys.SecretAccessKey,
		SessionToken:    keys.SessionToken,
		Source:          "SecretCredentialsProvider",
	}
	if p.TTL > 0 {
		creds.CanExpire = true
		creds.Expires = time.Now().Add(p.TTL)
	}
	return creds, nil
}

var _ aws.CredentialsProvider = (*SecretCredentialsProvider)(nil)

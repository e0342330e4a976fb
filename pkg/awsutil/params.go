package awsutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// GetParameter lê um parâmetro do Parameter Store usando o client real.
func GetParameter(ctx context.Context, region, path string, decrypt bool) (string, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return getParameterInternal(ctx, ssm.NewFromConfig(cfg), path, decrypt)
}

func getParameterInternal(ctx context.Context, client SSMClient, path string, decrypt bool) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro %s sem valor", path)
	}
	return *out.Parameter.Value, nil
}

// GetSecret lê um segredo do Secrets Manager usando o client real.
//
// Segredos em JSON podem ser lidos campo a campo com o formato "id#campo".
func GetSecret(ctx context.Context, region, secretID string) (string, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return getSecretInternal(ctx, secretsmanager.NewFromConfig(cfg), secretID)
}

func getSecretInternal(ctx context.Context, client SecretsClient, ref string) (string, error) {
	id, field := splitSecretRef(ref)
	raw, err := fetchSecretString(ctx, client, id)
	if err != nil {
		return "", err
	}
	if field == "" {
		return raw, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é JSON: %w", id, err)
	}
	val, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo %s ausente no segredo %s", field, id)
	}
	return fmt.Sprintf("%v", val), nil
}

func fetchSecretString(ctx context.Context, client SecretsClient, id string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", id)
	}
	return *out.SecretString, nil
}

func splitSecretRef(ref string) (id, field string) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '#' {
			return ref[:i], ref[i+1:]
		}
	}
	return ref, ""
}

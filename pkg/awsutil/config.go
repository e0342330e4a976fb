// Package awsutil concentra o acesso compartilhado à AWS: configuração lazy,
// Parameter Store, Secrets Manager, S3 e um provedor de credenciais baseado em segredo.
package awsutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

var (
	mu      sync.Mutex
	configs = map[string]aws.Config{}
)

// GetAWSConfig carrega a configuração da AWS (env vars, profile, IAM role) uma vez por região.
// Região vazia usa a resolução padrão do SDK.
func GetAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if cfg, ok := configs[region]; ok {
		return cfg, nil
	}

	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	configs[region] = cfg
	return cfg, nil
}

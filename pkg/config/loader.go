package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/fast-sns/envloader"
	"github.com/raywall/fast-sns/pkg/awsutil"
	"github.com/raywall/fast-sns/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// LoadClient é o atalho usado pelos binários: carrega, injeta e valida um ClientConf.
func LoadClient(ctx context.Context, source string) (*ClientConf, error) {
	return NewLoader().LoadClient(ctx, source)
}

// LoadEmulator é o atalho equivalente para EmulatorConf.
func LoadEmulator(ctx context.Context, source string) (*EmulatorConf, error) {
	return NewLoader().LoadEmulator(ctx, source)
}

// LoadClientFromEnv monta um ClientConf apenas com variáveis de ambiente (SNS_*, LOG_*, DD_*).
func LoadClientFromEnv() (*ClientConf, error) {
	var cfg ClientConf
	if err := envloader.Load(&cfg); err != nil {
		return nil, err
	}
	if err := NewValidator().ValidateClient(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}

// LoadEmulatorFromEnv monta um EmulatorConf apenas com variáveis de ambiente (EMULATOR_*).
func LoadEmulatorFromEnv() (*EmulatorConf, error) {
	var cfg EmulatorConf
	if err := envloader.Load(&cfg); err != nil {
		return nil, err
	}
	if err := NewValidator().ValidateEmulator(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}

// --- Interfaces para Mocking ---

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Loader suporta múltiplas fontes de configuração:
//
//   - caminho local ou "file://caminho"
//   - "s3://bucket/chave"
//   - "dynamodb://tabela/chave?col=config&pk=id"
//
// O formato é escolhido pela extensão (.toml ou YAML) ou pelo parâmetro "format".
// Clients nulos são criados com a configuração padrão da AWS.
type Loader struct {
	S3       awsutil.S3Client
	DynamoDB DynamoGetter
	Injector *injector.Injector

	validator *ConfigValidator
}

// NewLoader cria uma nova instância.
func NewLoader() *Loader {
	return &Loader{
		Injector:  injector.New(),
		validator: NewValidator(),
	}
}

// LoadClient lê a fonte, aplica defaults, injeta valores externos e valida.
func (l *Loader) LoadClient(ctx context.Context, source string) (*ClientConf, error) {
	var cfg ClientConf
	if err := l.load(ctx, source, &cfg); err != nil {
		return nil, err
	}
	if err := l.validator.ValidateClient(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}

// LoadEmulator lê a fonte, aplica defaults, injeta valores externos e valida.
func (l *Loader) LoadEmulator(ctx context.Context, source string) (*EmulatorConf, error) {
	var cfg EmulatorConf
	if err := l.load(ctx, source, &cfg); err != nil {
		return nil, err
	}
	if err := l.validator.ValidateEmulator(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) load(ctx context.Context, source string, out interface{}) error {
	// 1. Defaults declarados em envDefault
	noEnv := &envloader.Loader{Lookup: func(string) (string, bool) { return "", false }}
	if err := noEnv.Load(out); err != nil {
		return err
	}

	// 2. Leitura da fonte
	rawData, format, err := l.read(ctx, source)
	if err != nil {
		return fmt.Errorf("falha leitura config (%s): %w", source, err)
	}

	// 3. Unmarshal
	if err := decode(rawData, format, out); err != nil {
		return err
	}

	// 4. Injection (Env/Secrets/SSM)
	if l.Injector != nil {
		if err := l.Injector.Inject(ctx, out); err != nil {
			return fmt.Errorf("falha na injeção de variáveis: %w", err)
		}
	}
	return nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		client := l.S3
		if client == nil {
			cfg, err := awsutil.GetAWSConfig(ctx, "")
			if err != nil {
				return nil, "", err
			}
			client = s3.NewFromConfig(cfg)
		}
		data, err := awsutil.ReadS3URIWith(ctx, client, source)
		return data, formatOf(source), err

	case strings.HasPrefix(source, "dynamodb://"):
		client := l.DynamoDB
		if client == nil {
			cfg, err := awsutil.GetAWSConfig(ctx, "")
			if err != nil {
				return nil, "", err
			}
			client = dynamodb.NewFromConfig(cfg)
		}
		return loadFromDynamoDB(ctx, client, source)

	default:
		cleanPath := strings.TrimPrefix(source, "file://")
		data, err := os.ReadFile(cleanPath)
		return data, formatOf(cleanPath), err
	}
}

func loadFromDynamoDB(ctx context.Context, client DynamoGetter, uri string) ([]byte, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	colName := u.Query().Get("col")
	if colName == "" {
		colName = "config"
	}
	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id"
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
	})
	if err != nil {
		return nil, "", err
	}
	if out.Item == nil {
		return nil, "", fmt.Errorf("item não encontrado no DynamoDB")
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, "", err
	}
	content, ok := itemMap[colName].(string)
	if !ok {
		return nil, "", fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", colName)
	}

	format := u.Query().Get("format")
	if format == "" {
		format = "yaml"
	}
	return []byte(content), format, nil
}

func formatOf(source string) string {
	if u, err := url.Parse(source); err == nil && u.Query().Get("format") != "" {
		return u.Query().Get("format")
	}
	if strings.EqualFold(path.Ext(source), ".toml") {
		return "toml"
	}
	return "yaml"
}

func decode(data []byte, format string, out interface{}) error {
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("TOML malformado: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("YAML malformado: %w", err)
		}
	}
	return nil
}

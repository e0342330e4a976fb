package envloader_test

import (
	"fmt"
	"os"
	"time"

	"github.com/raywall/fast-sns/envloader"
)

func ExampleLoad() {
	// Define sua struct de configuração
	type Config struct {
		Endpoint string        `env:"EXAMPLE_SNS_ENDPOINT" envDefault:"http://localhost:9911"`
		Region   string        `env:"EXAMPLE_SNS_REGION" envDefault:"us-east-1"`
		Timeout  time.Duration `env:"EXAMPLE_SNS_TIMEOUT" envDefault:"15s"`
		Workers  int           `env:"EXAMPLE_SNS_WORKERS" envDefault:"10"`
	}

	// Define algumas variáveis de ambiente
	os.Setenv("EXAMPLE_SNS_REGION", "sa-east-1")
	os.Setenv("EXAMPLE_SNS_TIMEOUT", "3s")
	defer os.Unsetenv("EXAMPLE_SNS_REGION")
	defer os.Unsetenv("EXAMPLE_SNS_TIMEOUT")

	// Carrega a configuração
	var config Config
	if err := envloader.Load(&config); err != nil {
		panic(err)
	}

	fmt.Printf("Endpoint: %s\n", config.Endpoint)
	fmt.Printf("Region: %s\n", config.Region)
	fmt.Printf("Timeout: %s\n", config.Timeout)
	fmt.Printf("Workers: %d\n", config.Workers)

	// Output:
	// Endpoint: http://localhost:9911
	// Region: sa-east-1
	// Timeout: 3s
	// Workers: 10
}

func ExampleMustLoad() {
	type FanoutConfig struct {
		Topics []string `env:"EXAMPLE_FANOUT_TOPICS" envDefault:"audit,billing"`
	}

	type AppConfig struct {
		Fanout  FanoutConfig
		AppName string `env:"EXAMPLE_APP_NAME" envDefault:"lambda-fanout"`
	}

	// Carrega com valores padrão
	var config AppConfig
	envloader.MustLoad(&config)

	fmt.Printf("App: %s\n", config.AppName)
	fmt.Printf("Topics: %v\n", config.Fanout.Topics)

	// Output:
	// App: lambda-fanout
	// Topics: [audit billing]
}

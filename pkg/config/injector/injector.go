package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/raywall/fast-sns/pkg/awsutil"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.SNS_REGION}, ${ssm./sns/endpoint}, ${secret.prod/sns#access_key_id}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Resolver busca o valor de uma chave em uma fonte externa (ssm ou secret).
type Resolver func(ctx context.Context, key string) (string, error)

type Injector struct {
	Region string
	SSM    Resolver
	Secret Resolver
}

// New cria um Injector que resolve ssm/secret na região de AWS_REGION.
func New() *Injector {
	i := &Injector{Region: os.Getenv("AWS_REGION")}
	i.SSM = func(ctx context.Context, key string) (string, error) {
		return awsutil.GetParameter(ctx, i.Region, key, true)
	}
	i.Secret = func(ctx context.Context, key string) (string, error) {
		return awsutil.GetSecret(ctx, i.Region, key)
	}
	return i
}

func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for k := 0; k < t.NumField(); k++ {
			field := t.Field(k)
			value := v.Field(k)

			// 1. Tags (env:"...")
			if err := i.processStructTags(field, value); err != nil {
				return err
			}

			// 2. Strings com "${...}"
			if value.Kind() == reflect.String && value.CanSet() {
				newValue, err := i.interpolateString(ctx, value.String())
				if err != nil {
					return fmt.Errorf("campo %s: %w", field.Name, err)
				}
				value.SetString(newValue)
			}

			// 3. Recursão
			if value.CanSet() || value.Kind() == reflect.Ptr {
				if err := i.injectRecursive(ctx, value); err != nil {
					return err
				}
			}
		}

	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && !v.IsNil() {
			return i.injectMap(ctx, v)
		}

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if elem := v.Index(j); elem.Kind() == reflect.String && elem.CanSet() {
				newValue, err := i.interpolateString(ctx, elem.String())
				if err != nil {
					return err
				}
				elem.SetString(newValue)
				continue
			}
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// processStructTags aplica variáveis de ambiente declaradas na tag env,
// sobrescrevendo o valor vindo do arquivo.
func (i *Injector) processStructTags(field reflect.StructField, value reflect.Value) error {
	if !value.CanSet() {
		return nil
	}
	tag := field.Tag.Get("env")
	if tag == "" {
		return nil
	}
	if val, exists := os.LookupEnv(tag); exists {
		if err := setField(value, val); err != nil {
			return fmt.Errorf("variável %s: %w", tag, err)
		}
	}
	return nil
}

func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}
		content := match[2 : len(match)-1]
		parts := strings.SplitN(content, ".", 2)
		if len(parts) != 2 {
			return match
		}

		val, resolveErr := i.fetchValue(ctx, parts[0], parts[1])
		if resolveErr != nil {
			err = resolveErr
			return match
		}
		return val
	})

	return result, err
}

func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	updates := make(map[string]reflect.Value)

	for iter.Next() {
		key := iter.Key()
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return fmt.Errorf("chave %s: %w", key.String(), err)
			}
			nv := reflect.ValueOf(newVal)
			if v.Type().Elem().Kind() == reflect.String {
				nv = nv.Convert(v.Type().Elem())
			}
			updates[key.String()] = nv
		case reflect.Map:
			if subMap, ok := elem.Interface().(map[string]interface{}); ok {
				if err := i.injectMap(ctx, reflect.ValueOf(subMap)); err != nil {
					return err
				}
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), val)
	}
	return nil
}

func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		return os.Getenv(key), nil
	case "ssm":
		if i.SSM == nil {
			return "", fmt.Errorf("resolver ssm não configurado para %s", key)
		}
		return i.SSM(ctx, key)
	case "secret":
		if i.Secret == nil {
			return "", fmt.Errorf("resolver secret não configurado para %s", key)
		}
		return i.Secret(ctx, key)
	}
	return "", fmt.Errorf("fonte desconhecida: %s", sourceType)
}

func setField(field reflect.Value, val string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(val, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(val, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(val, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("tipo %s não suportado", field.Type())
		}
		parts := strings.Split(val, ",")
		out := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = reflect.Append(out, reflect.ValueOf(p).Convert(field.Type().Elem()))
			}
		}
		field.Set(out)
	}
	return nil
}

package envloader

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Loader preenche structs a partir de variáveis de ambiente.
//
// Prefix é concatenado ao nome de todas as variáveis (ex: "SNS_" + "REGION").
type Loader struct {
	Prefix string
	// Lookup substitui os.LookupEnv (útil em testes).
	Lookup func(key string) (string, bool)
}

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env", "envDefault", "envRequired" e "envSeparator".
func Load(config interface{}) error {
	return (&Loader{}).Load(config)
}

// LoadWithPrefix é o atalho para um Loader com prefixo.
func LoadWithPrefix(prefix string, config interface{}) error {
	return (&Loader{Prefix: prefix}).Load(config)
}

// Load executa o carregamento para o Loader configurado.
func (l *Loader) Load(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}
	return l.loadStruct(val.Elem())
}

func (l *Loader) lookup(key string) (string, bool) {
	if l.Lookup != nil {
		return l.Lookup(key)
	}
	return os.LookupEnv(key)
}

// loadStruct processa recursivamente uma struct
func (l *Loader) loadStruct(val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := l.loadStruct(field); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := l.loadStruct(field.Elem()); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		name := l.Prefix + envTag

		envValue, _ := l.lookup(name)
		if envValue == "" {
			envValue = fieldType.Tag.Get("envDefault")
		}
		if envValue == "" {
			if fieldType.Tag.Get("envRequired") == "true" {
				return &MissingVarError{FieldName: fieldType.Name, EnvVar: name}
			}
			continue
		}

		sep := fieldType.Tag.Get("envSeparator")
		if sep == "" {
			sep = ","
		}

		if err := setFieldValue(field, envValue, sep); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    name,
				Value:     envValue,
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue define o valor de um campo baseado no seu tipo
func setFieldValue(field reflect.Value, value, sep string) error {
	if !field.CanSet() {
		return nil
	}

	// time.Duration tem Kind Int64, mas é lido no formato "1m30s".
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	case reflect.Slice:
		parts := strings.Split(value, sep)
		slice := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			elem := reflect.New(field.Type().Elem()).Elem()
			if elem.Kind() == reflect.Slice {
				return &UnsupportedTypeError{Type: field.Type()}
			}
			if err := setFieldValue(elem, p, sep); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		field.Set(slice)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}

package envloader

import (
	"encoding"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// LookupFunc tem a mesma assinatura de os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Loader preenche structs a partir de um ambiente.
type Loader struct {
	lookup LookupFunc
}

// New cria um Loader sobre o ambiente do processo.
func New() *Loader {
	return &Loader{lookup: os.LookupEnv}
}

// NewWithLookup cria um Loader sobre uma fonte arbitrária (útil em testes).
func NewWithLookup(lookup LookupFunc) *Loader {
	return &Loader{lookup: lookup}
}

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env", "envDefault", "envRequired" e "envPrefix".
func Load(config interface{}) error {
	return New().Load(config)
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}

// Load preenche config, que deve ser um ponteiro para struct.
func (l *Loader) Load(config interface{}) error {
	val := reflect.ValueOf(config)
	if !val.IsValid() {
		return &InvalidConfigError{}
	}
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}

	return l.loadStruct(val.Elem(), "")
}

// loadStruct processa recursivamente uma struct; prefix vem de envPrefix dos pais.
func (l *Loader) loadStruct(val reflect.Value, prefix string) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		envTag := fieldType.Tag.Get("env")

		// Structs aninhadas sem tag env (e que não se decodificam sozinhas)
		if envTag == "" && isNested(field) {
			nestedPrefix := prefix + fieldType.Tag.Get("envPrefix")
			if field.Kind() == reflect.Ptr {
				if field.IsNil() {
					field.Set(reflect.New(field.Type().Elem()))
				}
				field = field.Elem()
			}
			if err := l.loadStruct(field, nestedPrefix); err != nil {
				return err
			}
			continue
		}

		if envTag == "" {
			continue
		}

		name := prefix + envTag
		envValue, _ := l.lookup(name)

		if envValue == "" {
			envValue = fieldType.Tag.Get("envDefault")
		}

		if envValue == "" {
			if fieldType.Tag.Get("envRequired") == "true" {
				return &RequiredError{FieldName: fieldType.Name, EnvVar: name}
			}
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
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

func isNested(field reflect.Value) bool {
	t := field.Type()
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return false
	}
	if t.Kind() == reflect.Struct {
		return true
	}
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct && !t.Implements(textUnmarshalerType)
}

// setFieldValue define o valor de um campo baseado no seu tipo
func setFieldValue(field reflect.Value, value string) error {
	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(value))
		}
	}

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
		if field.Type().Elem().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: field.Type()}
		}
		parts := strings.Split(value, ",")
		out := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = reflect.Append(out, reflect.ValueOf(p).Convert(field.Type().Elem()))
			}
		}
		field.Set(out)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

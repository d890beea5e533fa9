package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raywall/mockerize/envloader"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *RuntimeConf) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *RuntimeConf) error {
	// Lambda não abre socket: workers e shutdown não se aplicam
	if cfg.Runtime == RuntimeLambda && cfg.Workers > 0 {
		return fmt.Errorf("workers (%d) não é suportado no runtime lambda", cfg.Workers)
	}
	return nil
}

// LoadRuntime lê RuntimeConf do ambiente do processo e valida.
func LoadRuntime() (*RuntimeConf, error) {
	return LoadRuntimeFrom(envloader.New())
}

// LoadRuntimeFrom lê RuntimeConf de um envloader arbitrário e valida.
func LoadRuntimeFrom(loader *envloader.Loader) (*RuntimeConf, error) {
	var cfg RuntimeConf
	if err := loader.Load(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao ler variáveis de ambiente: %w", err)
	}
	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

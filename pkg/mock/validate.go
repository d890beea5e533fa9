package mock

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate realiza validações estruturais (tags) e semânticas (IDs e referências cruzadas).
//
// Um activeResponse que aponta para um ID inexistente não é erro: a rota apenas
// fica sem resposta ativa.
func (si *ServerInfo) Validate() error {
	// 1. Validação Estrutural
	if err := structValidator().Struct(si); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(msgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica
	if !si.Server.Address.IsValid() {
		return &AddressError{Value: "", Err: errors.New("campo 'address' ausente")}
	}
	if si.Server.RouterID != si.Router.ID {
		return fmt.Errorf("server.routerId (%s) não corresponde a router.id (%s)", si.Server.RouterID, si.Router.ID)
	}
	if si.Router.ServerID != nil && *si.Router.ServerID != si.Server.ID {
		return fmt.Errorf("router.serverId (%s) não corresponde a server.id (%s)", *si.Router.ServerID, si.Server.ID)
	}
	if err := uniqueHeaders("server.headers", si.Server.Headers); err != nil {
		return err
	}

	routeIDs := make(map[uuid.UUID]bool, len(si.Router.Routes))
	for i, route := range si.Router.Routes {
		if routeIDs[route.ID] {
			return fmt.Errorf("route ID duplicado detectado: '%s'", route.ID)
		}
		routeIDs[route.ID] = true

		scope := fmt.Sprintf("router.routes[%d]", i)
		if !route.Method.IsValid() {
			return fmt.Errorf("%s: método HTTP inválido: %q", scope, route.Method)
		}
		if err := uniqueHeaders(scope+".headers", route.Headers); err != nil {
			return err
		}

		responseIDs := make(map[uuid.UUID]bool, len(route.Responses))
		for j, resp := range route.Responses {
			if responseIDs[resp.ID] {
				return fmt.Errorf("%s: response ID duplicado detectado: '%s'", scope, resp.ID)
			}
			responseIDs[resp.ID] = true

			if err := uniqueHeaders(fmt.Sprintf("%s.responses[%d].headers", scope, j), resp.Headers); err != nil {
				return err
			}
		}
	}

	return nil
}

func uniqueHeaders(scope string, headers []Header) error {
	seen := make(map[uuid.UUID]bool, len(headers))
	for _, h := range headers {
		if seen[h.ID] {
			return fmt.Errorf("%s: header ID duplicado detectado: '%s'", scope, h.ID)
		}
		seen[h.ID] = true
	}
	return nil
}

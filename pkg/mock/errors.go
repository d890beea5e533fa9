// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package mock

import (
	"fmt"
	"strings"
)

// IoError é retornado quando o documento de configuração não pode ser
// aberto, lido ou gravado.
type IoError struct {
	// Op é a operação que falhou ("read" ou "write").
	Op string
	// Path é o caminho (ou URI) envolvido na operação.
	Path string
	// Err é o erro original do sistema de arquivos ou do backend remoto.
	Err error
}

// Error retorna uma mensagem com a operação e o caminho envolvidos.
//
// Exemplo de Retorno: "mock: falha de I/O (read) em `server.json`: open server.json: no such file or directory"
func (e *IoError) Error() string {
	return fmt.Sprintf("mock: falha de I/O (%s) em `%s`: %v", e.Op, e.Path, e.Err)
}

// Unwrap expõe o erro original para errors.Is / errors.As.
func (e *IoError) Unwrap() error { return e.Err }

// ConfigError é retornado quando o documento é sintaticamente inválido ou
// viola o esquema do ServerInfo.
//
// Line e Column são 1-based. Quando o parser não informa a posição, ambos
// ficam zerados e a mensagem omite a localização.
type ConfigError struct {
	// Source identifica a origem do documento (arquivo, s3://..., etc).
	Source string
	// Line é a linha onde o erro foi detectado (0 quando desconhecida).
	Line int
	// Column é a coluna onde o erro foi detectado (0 quando desconhecida).
	Column int
	// Err é o erro original do parser ou do validador.
	Err error
}

// Error retorna a mensagem do erro incluindo "line L column C" quando disponível.
//
// Exemplo de Retorno: "mock: configuração inválida em `server.json` (line 3 column 16): invalid character '}' ..."
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("mock: configuração inválida")
	if e.Source != "" {
		fmt.Fprintf(&b, " em `%s`", e.Source)
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&b, " (line %d column %d)", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

// Unwrap expõe o erro original para errors.Is / errors.As.
func (e *ConfigError) Unwrap() error { return e.Err }

// AddressError é retornado quando o endereço de escuta não é um IPv4/IPv6 válido.
type AddressError struct {
	// Value é o texto recebido.
	Value string
	// Err é o erro de parsing original.
	Err error
}

// Error retorna uma mensagem com o valor rejeitado.
func (e *AddressError) Error() string {
	return fmt.Sprintf("mock: endereço inválido %q: esperado um endereço IPv4 ou IPv6 válido", e.Value)
}

// Unwrap expõe o erro original para errors.Is / errors.As.
func (e *AddressError) Unwrap() error { return e.Err }

// BindError é retornado pelo colaborador de rede quando o listener não pode
// ser criado no endereço configurado. O núcleo nunca abre sockets; o tipo
// existe aqui para que CLI e transporte compartilhem a mesma taxonomia.
type BindError struct {
	// Addr é o endereço "host:porta" que se tentou associar.
	Addr string
	// Err é o erro original do sistema operacional.
	Err error
}

// Error retorna uma mensagem com o endereço que falhou.
func (e *BindError) Error() string {
	return fmt.Sprintf("mock: falha ao associar listener em %s: %v", e.Addr, e.Err)
}

// Unwrap expõe o erro original para errors.Is / errors.As.
func (e *BindError) Unwrap() error { return e.Err }

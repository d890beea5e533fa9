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
//
// Package mock define o modelo declarativo de um servidor mock e sua
// persistência em disco.
//
// Visão Geral:
// Um documento de configuração descreve exatamente um servidor (ServerInfo),
// composto por um Server (endereço, porta, headers globais) e um Router (rotas
// ordenadas). Cada Route possui um método HTTP, um path com parâmetros no
// formato `:nome`, headers próprios e uma lista de Responses candidatas, das
// quais apenas uma é a "resposta ativa".
//
// Funcionalidades Principais:
//   - Load/Save: leitura e gravação com round-trip campo a campo (JSON ou YAML).
//   - Decodificação estrita: campos desconhecidos são rejeitados e erros de
//     sintaxe carregam linha e coluna (*ConfigError).
//   - Resposta Ativa: seleção explícita por ID, com a primeira resposta
//     declarada como padrão implícito.
//   - Erros Tipados: *IoError, *ConfigError, *AddressError e *BindError.
//
// Estrutura do Documento (JSON):
//
//	{
//	  "server": {
//	    "id": "a2fe836a-034e-4117-9e0c-4e05df6da784",
//	    "routerId": "d5926f6e-155f-42cd-8f6b-580e1fc8ab1c",
//	    "address": "127.0.0.1",
//	    "port": 8080,
//	    "name": "Example",
//	    "description": "",
//	    "headers": []
//	  },
//	  "router": {
//	    "id": "d5926f6e-155f-42cd-8f6b-580e1fc8ab1c",
//	    "serverId": "a2fe836a-034e-4117-9e0c-4e05df6da784",
//	    "routes": [
//	      {
//	        "id": "a27d777e-0321-44e3-a233-f4271cf7e05c",
//	        "path": "/hello-world",
//	        "method": "GET",
//	        "headers": [],
//	        "responses": [
//	          {
//	            "id": "8cd81b4a-046a-47e9-87ec-75a01b850a64",
//	            "name": "Example",
//	            "status": 200,
//	            "response": "Hello, World",
//	            "responseType": "text",
//	            "active": true,
//	            "headers": []
//	          }
//	        ],
//	        "activeResponse": "8cd81b4a-046a-47e9-87ec-75a01b850a64"
//	      }
//	    ]
//	  }
//	}
//
// Exemplo de Uso:
//
//	info, err := mock.NewServerInfo()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp := mock.NewResponse("Example", 200, mock.ResponseText, "Hello, World")
//	route := mock.NewRoute("/hello-world", mock.MethodGet)
//	route.AddResponse(resp)
//	route.SetActiveResponse(resp.ID)
//	info.Router.AddRoute(route)
//
//	if err := mock.Save(info, "server.json"); err != nil {
//	    log.Fatal(err)
//	}
package mock

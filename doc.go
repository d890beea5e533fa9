// Package mockerize sobe servidores HTTP mock a partir de um documento
// declarativo.
//
// Visão Geral:
// Um documento (JSON ou YAML) descreve um servidor (endereço, porta, headers),
// um roteador e as rotas. Cada rota tem uma lista de respostas candidatas e
// aponta qual delas está ativa. Ao subir, todas as rotas com resposta ativa
// são registradas e respondem sempre a mesma coisa: status, corpo e headers.
//
// Sub-Pacotes Principais:
//
// 1. pkg/mock:
//   - Modelo de dados (ServerInfo, Server, Router, Route, Response, Header).
//   - Leitura e gravação do documento com erros tipados (linha e coluna).
//   - Resolução da resposta ativa de cada rota.
//
// 2. pkg/engine:
//   - Compilação de paths (/users/:user-id vira /users/{user_id}).
//   - Cascata de headers servidor -> rota -> resposta.
//   - Construção da tabela de rotas e do http.Handler (gorilla/mux).
//
// 3. pkg/storage:
//   - Origem e destino do documento: disco, s3://, dynamodb://, redis://, postgres://.
//
// 4. pkg/transport:
//   - Servidor HTTP sobre listener já aberto, com limite de workers e
//     encerramento gracioso; adaptador para API Gateway (Lambda).
//
// 5. envloader, pkg/config, pkg/logger, pkg/observability:
//   - Configuração de execução por variáveis de ambiente, zerolog e Datadog.
//
// Exemplo de Uso (CLI):
//
//	mockerize new server.json -n "Minha API" -p 9090
//	mockerize test server.json
//	mockerize run server.json -w 4
//
// Exemplo de Uso (biblioteca):
//
//	info, err := mock.Load("server.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ln, err := transport.Listen(info)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := transport.Run(ctx, info, ln, transport.ServerOptions{Workers: 4}); err != nil {
//		log.Fatal(err)
//	}
package mockerize

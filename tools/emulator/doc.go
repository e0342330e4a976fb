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
// Package emulator fornece um servidor local que fala o protocolo Query/XML do
// Amazon SNS, projetado para desenvolvimento local e testes de integração sem
// depender da AWS.
//
// Visão Geral:
// O `emulator` aceita as mesmas requisições que o client `sns` envia para a AWS
// (form POST com `Action` e `Version=2010-03-31`) e responde com o mesmo XML,
// incluindo os códigos de erro do serviço (`NotFound`, `InvalidParameter`,
// `EmptyBatchRequest`, ...). Basta apontar o endpoint do client para ele.
//
// Funcionalidades Principais:
//   - Tópicos padrão e FIFO: ARN `arn:aws:sns:<region>:<account>:<name>`,
//     MessageGroupId obrigatório, deduplicação por id ou por conteúdo e
//     SequenceNumber crescente.
//   - Assinaturas: http/https recebem SubscriptionConfirmation com SubscribeURL
//     (GET em "/" confirma); filas SQS recebem as notificações via SendMessage.
//   - FilterPolicy: escopos MessageAttributes e MessageBody, com os operadores
//     prefix, suffix, anything-but, exists, numeric e equals-ignore-case.
//   - Aplicações de plataforma, endpoints de push, atributos de SMS e números
//     que recusaram SMS (opted-out).
//   - Estado plugável: memória, Redis ou DynamoDB (pacote store).
//   - Injeção de falhas: regras CEL avaliadas antes de cada ação, com as
//     variáveis `action`, `params` e `calls`.
//
// Estrutura de Configuração (YAML):
//
//	port: 9911
//	region: us-east-1
//	account_id: "000000000000"
//	store:
//	  type: redis
//	  redis:
//	    addr: localhost:6379
//	delivery:
//	  enabled: true
//	  sqs_endpoint: http://localhost:9324
//	faults:
//	  - id: throttle-publish
//	    expr: action == "Publish" && calls % 3 == 0
//	    code: Throttled
//	    status: 400
//	    times: 5
//
// Exemplo de Inicialização Programática (Go):
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/raywall/fast-sns/pkg/config"
//	    "github.com/raywall/fast-sns/tools/emulator"
//	    "github.com/raywall/fast-sns/tools/emulator/delivery"
//	    "github.com/raywall/fast-sns/tools/emulator/store"
//	)
//
//	func main() {
//	    cfg, err := config.LoadEmulator(context.Background(), "emulator.yaml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    faults, err := emulator.NewFaults(cfg.Faults)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    srv := emulator.NewServer(*cfg, store.NewMemory(), delivery.NewHTTP(0), faults)
//	    log.Fatal(srv.Start(context.Background()))
//	}
package emulator

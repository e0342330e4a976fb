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
// Package sns é um client para o Amazon Simple Notification Service.
//
// Visão Geral:
// O Client expõe as 31 operações do serviço (tópicos, assinaturas, push,
// SMS e publicação) sobre o protocolo Query da AWS: POST form-encoded com
// Action e Version, respostas em XML e assinatura SigV4.
//
// Todas as operações passam por um único caminho genérico que valida a
// entrada (go-playground/validator), serializa, assina, envia, classifica o
// erro em um tipo específico e repete conforme a RetryPolicy.
//
// Erros:
//   - *ClientError: a requisição não pôde ser enviada ou a resposta não pôde ser lida.
//   - *NotFoundException, *ThrottledException, ...: erro tipado por código do serviço.
//   - *ServiceError: código não mapeado. Todos os tipados também fazem Unwrap para ele.
//
// Assíncrono:
// O AsyncClient executa qualquer API em um pool limitado de goroutines. Cada
// chamada devolve uma Future e, opcionalmente, notifica um Handler antes de
// resolvê-la, exatamente uma vez.
//
// Exemplo:
//
//	client, err := sns.New(ctx, sns.Options{Region: "us-east-1"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	topic, err := client.CreateTopic(ctx, &sns.CreateTopicInput{Name: "orders"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	async := sns.NewAsync(client, sns.AsyncOptions{})
//	defer async.Shutdown()
//
//	f := async.PublishAsync(ctx, &sns.PublishInput{TopicArn: topic.TopicArn, Message: "hello"})
//	out, err := f.Get(ctx)
package sns

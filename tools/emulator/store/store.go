// Package store guarda o estado do emulador (tópicos, assinaturas, aplicações,
// endpoints e atributos de SMS) em memória, Redis, DynamoDB ou Postgres.
//
// Os registros são opacos para o store: cada um é identificado por (kind, id)
// e carrega um payload JSON serializado pelo emulador.
package store

import (
	"context"
	"errors"
)

// ErrNotFound é retornado por Get quando o registro não existe.
var ErrNotFound = errors.New("store: record not found")

// Record é um registro devolvido por List.
type Record struct {
	ID   string
	Data []byte
}

// Store é o contrato dos backends de estado.
//
// List devolve os registros de um kind ordenados por ID. Delete de um
// registro inexistente não é erro.
type Store interface {
	Put(ctx context.Context, kind, id string, data []byte) error
	Get(ctx context.Context, kind, id string) ([]byte, error)
	Delete(ctx context.Context, kind, id string) error
	List(ctx context.Context, kind string) ([]Record, error)
}

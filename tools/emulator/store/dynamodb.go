package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient é o subconjunto do SDK usado pelo store (permite Mocking).
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// item é o formato gravado na tabela: hash key "kind", sort key "id".
type item struct {
	Kind string `dynamodbav:"kind"`
	ID   string `dynamodbav:"id"`
	Data string `dynamodbav:"data"`
}

type dynamoStore struct {
	client DynamoDBClient
	table  string
}

// NewDynamoDB cria um Store sobre uma tabela com chave composta kind (HASH) + id (RANGE), ambas String.
func NewDynamoDB(client DynamoDBClient, table string) Store {
	return &dynamoStore{client: client, table: table}
}

func (s *dynamoStore) key(kind, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"kind": &types.AttributeValueMemberS{Value: kind},
		"id":   &types.AttributeValueMemberS{Value: id},
	}
}

func (s *dynamoStore) Put(ctx context.Context, kind, id string, data []byte) error {
	av, err := attributevalue.MarshalMap(item{Kind: kind, ID: id, Data: string(data)})
	if err != nil {
		return fmt.Errorf("dynamostore: marshal failed: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamostore: put failed: %w", err)
	}
	return nil
}

func (s *dynamoStore) Get(ctx context.Context, kind, id string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(kind, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return []byte(it.Data), nil
}

func (s *dynamoStore) Delete(ctx context.Context, kind, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(kind, id),
	})
	if err != nil {
		return fmt.Errorf("dynamostore: delete failed: %w", err)
	}
	return nil
}

func (s *dynamoStore) List(ctx context.Context, kind string) ([]Record, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("kind").Equal(expression.Value(kind))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dynamostore: build expression failed: %w", err)
	}

	var out []Record
	var lastKey map[string]types.AttributeValue
	for {
		resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
			ConsistentRead:            aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("dynamostore: query failed: %w", err)
		}

		var items []item
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
		}
		for _, it := range items {
			out = append(out, Record{ID: it.ID, Data: []byte(it.Data)})
		}

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = resp.LastEvaluatedKey
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

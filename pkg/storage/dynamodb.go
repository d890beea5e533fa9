package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/raywall/mockerize/pkg/secrets"
)

// Valores padrão para dynamodb://tabela/chave?pk=id&col=document
const (
	DefaultDynamoPK  = "id"
	DefaultDynamoCol = "document"
)

// DynamoAPI é o subconjunto do cliente DynamoDB usado pelo store.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type dynamoLocation struct {
	table string
	pk    string
	key   string
	col   string
}

func parseDynamoURI(uri string) (dynamoLocation, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return dynamoLocation{}, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	loc := dynamoLocation{
		table: u.Host,
		key:   strings.TrimPrefix(u.Path, "/"),
		pk:    u.Query().Get("pk"),
		col:   u.Query().Get("col"),
	}
	if loc.pk == "" {
		loc.pk = DefaultDynamoPK
	}
	if loc.col == "" {
		loc.col = DefaultDynamoCol
	}
	if loc.table == "" || loc.key == "" {
		return dynamoLocation{}, fmt.Errorf("URL DynamoDB inválida: esperado dynamodb://tabela/chave, recebido %s", uri)
	}
	return loc, nil
}

func (s *UniversalStore) dynamoClient(ctx context.Context) (DynamoAPI, error) {
	if s.dynamo != nil {
		return s.dynamo, nil
	}
	cfg, err := secrets.GetAWSConfig(ctx, s.region)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
	}
	s.dynamo = dynamodb.NewFromConfig(cfg)
	return s.dynamo, nil
}

func (s *UniversalStore) loadFromDynamoDB(ctx context.Context, uri string) ([]byte, error) {
	loc, err := parseDynamoURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := s.dynamoClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &loc.table,
		Key: map[string]types.AttributeValue{
			loc.pk: &types.AttributeValueMemberS{Value: loc.key},
		},
	})
	if err != nil {
		return nil, err
	}

	if out.Item == nil {
		return nil, fmt.Errorf("item '%s' não encontrado no DynamoDB", loc.key)
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, err
	}

	content, ok := itemMap[loc.col].(string)
	if !ok {
		return nil, fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", loc.col)
	}

	return []byte(content), nil
}

func (s *UniversalStore) saveToDynamoDB(ctx context.Context, uri string, data []byte, overwrite bool) error {
	loc, err := parseDynamoURI(uri)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(map[string]string{
		loc.pk:  loc.key,
		loc.col: string(data),
	})
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: &loc.table,
		Item:      item,
	}

	if !overwrite {
		cond := expression.AttributeNotExists(expression.Name(loc.pk))
		expr, err := expression.NewBuilder().WithCondition(cond).Build()
		if err != nil {
			return err
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
	}

	client, err := s.dynamoClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.PutItem(ctx, input)
	return err
}

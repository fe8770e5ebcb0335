package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

const defaultSequencesTableName = "document_sequences"

// SequenceDynamoRepository backs document numbering with one counter item
// per (prefix, year) key.
//
// Table requirements:
//   - PK: id (string), e.g. "RG-2024"
//
// NextSequence is a single UpdateItem with an ADD expression; DynamoDB
// applies it atomically, so two concurrent callers always observe distinct
// values.
type SequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISequenceRepository = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb *dynamodb.Client, tableName string) *SequenceDynamoRepository {
	if tableName == "" {
		tableName = defaultSequencesTableName
	}
	return &SequenceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SequenceDynamoRepository) NextSequence(ctx context.Context, key string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq_value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq_value"]
	if !ok {
		return 0, errors.New("sequence counter missing after update")
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("sequence counter has unexpected type")
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

const defaultCostRecordsTableName = "cost_records"

type auditEntryRecord struct {
	Action    string `dynamodbav:"action"`
	Actor     string `dynamodbav:"actor"`
	Comment   string `dynamodbav:"comment,omitempty"`
	Timestamp string `dynamodbav:"timestamp"`
}

type costRecordItem struct {
	ID        string `dynamodbav:"id"`
	Number    string `dynamodbav:"number,omitempty"`
	ProjectID string `dynamodbav:"project_id,omitempty"`
	Category  string `dynamodbav:"category"`

	Description string `dynamodbav:"description,omitempty"`
	NetAmount   string `dynamodbav:"net_amount"`
	TaxRate     string `dynamodbav:"tax_rate"`
	TaxAmount   string `dynamodbav:"tax_amount"`
	GrossAmount string `dynamodbav:"gross_amount"`

	ApprovalStatus string `dynamodbav:"approval_status"`
	PaymentStatus  string `dynamodbav:"payment_status"`
	PaymentDetail  string `dynamodbav:"payment_detail,omitempty"`
	PaidAt         string `dynamodbav:"paid_at,omitempty"`

	CreatedBy string             `dynamodbav:"created_by"`
	History   []auditEntryRecord `dynamodbav:"history,omitempty"`

	Version   int    `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// CostRecordDynamoRepository persists CostRecord documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type CostRecordDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICostRecordRepository = (*CostRecordDynamoRepository)(nil)

func NewCostRecordDynamoRepository(ddb *dynamodb.Client, tableName string) *CostRecordDynamoRepository {
	if tableName == "" {
		tableName = defaultCostRecordsTableName
	}
	return &CostRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CostRecordDynamoRepository) Create(ctx context.Context, c *entities.CostRecord) error {
	it := toCostRecordItem(c)
	it.Version = 1

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return err
	}
	c.Version = 1
	return nil
}

func (r *CostRecordDynamoRepository) GetByID(ctx context.Context, id string) (*entities.CostRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it costRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return fromCostRecordItem(it), nil
}

func (r *CostRecordDynamoRepository) Save(ctx context.Context, c *entities.CostRecord) error {
	expected := c.Version
	it := toCostRecordItem(c)
	it.Version = expected + 1

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: intToString(expected)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return interfaces.ErrVersionConflict
		}
		return err
	}
	c.Version = expected + 1
	return nil
}

func toCostRecordItem(c *entities.CostRecord) costRecordItem {
	history := make([]auditEntryRecord, len(c.History))
	for i, h := range c.History {
		history[i] = auditEntryRecord{
			Action:    h.Action,
			Actor:     h.Actor,
			Comment:   h.Comment,
			Timestamp: timeToString(h.Timestamp),
		}
	}

	paidAt := ""
	if c.PaidAt != nil {
		paidAt = timeToString(*c.PaidAt)
	}

	return costRecordItem{
		ID:             c.ID,
		Number:         c.Number,
		ProjectID:      c.ProjectID,
		Category:       c.Category,
		Description:    c.Description,
		NetAmount:      decToString(c.NetAmount),
		TaxRate:        rateToString(c.TaxRate),
		TaxAmount:      decToString(c.TaxAmount),
		GrossAmount:    decToString(c.GrossAmount),
		ApprovalStatus: string(c.ApprovalStatus),
		PaymentStatus:  string(c.PaymentStatus),
		PaymentDetail:  c.PaymentDetail,
		PaidAt:         paidAt,
		CreatedBy:      c.CreatedBy,
		History:        history,
		Version:        c.Version,
		CreatedAt:      timeToString(c.CreatedAt),
		UpdatedAt:      timeToString(c.UpdatedAt),
	}
}

func fromCostRecordItem(it costRecordItem) *entities.CostRecord {
	var history []entities.AuditEntry
	if len(it.History) > 0 {
		history = make([]entities.AuditEntry, len(it.History))
		for i, h := range it.History {
			history[i] = entities.AuditEntry{
				Action:    h.Action,
				Actor:     h.Actor,
				Comment:   h.Comment,
				Timestamp: stringToTime(h.Timestamp),
			}
		}
	}

	var paidAt *time.Time
	if it.PaidAt != "" {
		t := stringToTime(it.PaidAt)
		paidAt = &t
	}

	return &entities.CostRecord{
		ID:             it.ID,
		Number:         it.Number,
		ProjectID:      it.ProjectID,
		Category:       it.Category,
		Description:    it.Description,
		NetAmount:      stringToDec(it.NetAmount),
		TaxRate:        stringToDec(it.TaxRate),
		TaxAmount:      stringToDec(it.TaxAmount),
		GrossAmount:    stringToDec(it.GrossAmount),
		ApprovalStatus: entities.CostApprovalStatus(it.ApprovalStatus),
		PaymentStatus:  entities.CostPaymentStatus(it.PaymentStatus),
		PaymentDetail:  it.PaymentDetail,
		PaidAt:         paidAt,
		CreatedBy:      it.CreatedBy,
		History:        history,
		Version:        it.Version,
		CreatedAt:      stringToTime(it.CreatedAt),
		UpdatedAt:      stringToTime(it.UpdatedAt),
	}
}

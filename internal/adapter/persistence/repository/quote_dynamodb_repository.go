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

const defaultQuotesTableName = "quotes"

type quoteItem struct {
	ID            string `dynamodbav:"id"`
	Number        string `dynamodbav:"number,omitempty"`
	CustomerID    string `dynamodbav:"customer_id"`
	ProjectID     string `dynamodbav:"project_id,omitempty"`
	PredecessorID string `dynamodbav:"predecessor_id,omitempty"`

	IssueDate  string `dynamodbav:"issue_date"`
	ValidUntil string `dynamodbav:"valid_until"`

	Status        string               `dynamodbav:"status"`
	StatusHistory []statusChangeRecord `dynamodbav:"status_history,omitempty"`
	SendLog       []sendLogRecord      `dynamodbav:"send_log,omitempty"`
	FollowUps     []followUpItemRecord `dynamodbav:"follow_ups,omitempty"`

	Items         []lineItemRecord `dynamodbav:"items"`
	OptionalItems []lineItemRecord `dynamodbav:"optional_items,omitempty"`

	DiscountPercent string `dynamodbav:"discount_percent"`
	DiscountAmount  string `dynamodbav:"discount_amount"`

	NetTotal         string           `dynamodbav:"net_total"`
	TotalDiscount    string           `dynamodbav:"total_discount"`
	TaxBreakdown     []taxGroupRecord `dynamodbav:"tax_breakdown,omitempty"`
	TaxTotal         string           `dynamodbav:"tax_total"`
	GrossTotal       string           `dynamodbav:"gross_total"`
	ConvertedOrderID string           `dynamodbav:"converted_order_id,omitempty"`

	Notes   string `dynamodbav:"notes,omitempty"`
	Version int    `dynamodbav:"version"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

type followUpItemRecord struct {
	Kind     string `dynamodbav:"kind"`
	Outcome  string `dynamodbav:"outcome,omitempty"`
	NextStep string `dynamodbav:"next_step,omitempty"`
	Actor    string `dynamodbav:"actor"`
	Date     string `dynamodbav:"date"`
}

// QuoteDynamoRepository persists Quote documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Writes are whole-document puts guarded by a version condition: the engine
// recalculates inside the load-mutate-save cycle, and a concurrent writer
// losing the race gets ErrVersionConflict instead of silently overwriting.
type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = defaultQuotesTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q *entities.Quote) error {
	it := toQuoteItem(q)
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
	q.Version = 1
	return nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (*entities.Quote, error) {
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

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Save(ctx context.Context, q *entities.Quote) error {
	expected := q.Version
	it := toQuoteItem(q)
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
	q.Version = expected + 1
	return nil
}

func (r *QuoteDynamoRepository) ListExpirable(ctx context.Context, cutoff time.Time) ([]*entities.Quote, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status IN (:sent, :follow_up, :negotiation)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sent":        &types.AttributeValueMemberS{Value: string(entities.QuoteStatusSent)},
			":follow_up":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusFollowUp)},
			":negotiation": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusNegotiation)},
		},
	}

	var quotes []*entities.Quote
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it quoteItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			q := fromQuoteItem(it)
			// Validity comparison happens here, not in the filter
			// expression: RFC3339Nano strings with trimmed fractional
			// seconds do not sort lexicographically.
			if !q.ValidUntil.IsZero() && q.ValidUntil.Before(cutoff) {
				quotes = append(quotes, q)
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return quotes, nil
}

func toQuoteItem(q *entities.Quote) quoteItem {
	followUps := make([]followUpItemRecord, len(q.FollowUps))
	for i, f := range q.FollowUps {
		followUps[i] = followUpItemRecord{
			Kind:     f.Kind,
			Outcome:  f.Outcome,
			NextStep: f.NextStep,
			Actor:    f.Actor,
			Date:     timeToString(f.Date),
		}
	}

	return quoteItem{
		ID:               q.ID,
		Number:           q.Number,
		CustomerID:       q.CustomerID,
		ProjectID:        q.ProjectID,
		PredecessorID:    q.PredecessorID,
		IssueDate:        timeToString(q.IssueDate),
		ValidUntil:       timeToString(q.ValidUntil),
		Status:           string(q.Status),
		StatusHistory:    toStatusChangeRecords(q.StatusHistory),
		SendLog:          toSendLogRecords(q.SendLog),
		FollowUps:        followUps,
		Items:            toLineItemRecords(q.Items),
		OptionalItems:    toLineItemRecords(q.OptionalItems),
		DiscountPercent:  rateToString(q.DiscountPercent),
		DiscountAmount:   decToString(q.DiscountAmount),
		NetTotal:         decToString(q.NetTotal),
		TotalDiscount:    decToString(q.TotalDiscount),
		TaxBreakdown:     toTaxGroupRecords(q.TaxBreakdown),
		TaxTotal:         decToString(q.TaxTotal),
		GrossTotal:       decToString(q.GrossTotal),
		ConvertedOrderID: q.ConvertedOrderID,
		Notes:            q.Notes,
		Version:          q.Version,
		CreatedAt:        timeToString(q.CreatedAt),
		UpdatedAt:        timeToString(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) *entities.Quote {
	var followUps []entities.FollowUpRecord
	if len(it.FollowUps) > 0 {
		followUps = make([]entities.FollowUpRecord, len(it.FollowUps))
		for i, f := range it.FollowUps {
			followUps[i] = entities.FollowUpRecord{
				Kind:     f.Kind,
				Outcome:  f.Outcome,
				NextStep: f.NextStep,
				Actor:    f.Actor,
				Date:     stringToTime(f.Date),
			}
		}
	}

	return &entities.Quote{
		ID:               it.ID,
		Number:           it.Number,
		CustomerID:       it.CustomerID,
		ProjectID:        it.ProjectID,
		PredecessorID:    it.PredecessorID,
		IssueDate:        stringToTime(it.IssueDate),
		ValidUntil:       stringToTime(it.ValidUntil),
		Status:           entities.QuoteStatus(it.Status),
		StatusHistory:    fromStatusChangeRecords(it.StatusHistory),
		SendLog:          fromSendLogRecords(it.SendLog),
		FollowUps:        followUps,
		Items:            fromLineItemRecords(it.Items),
		OptionalItems:    fromLineItemRecords(it.OptionalItems),
		DiscountPercent:  stringToDec(it.DiscountPercent),
		DiscountAmount:   stringToDec(it.DiscountAmount),
		NetTotal:         stringToDec(it.NetTotal),
		TotalDiscount:    stringToDec(it.TotalDiscount),
		TaxBreakdown:     fromTaxGroupRecords(it.TaxBreakdown),
		TaxTotal:         stringToDec(it.TaxTotal),
		GrossTotal:       stringToDec(it.GrossTotal),
		ConvertedOrderID: it.ConvertedOrderID,
		Notes:            it.Notes,
		Version:          it.Version,
		CreatedAt:        stringToTime(it.CreatedAt),
		UpdatedAt:        stringToTime(it.UpdatedAt),
	}
}

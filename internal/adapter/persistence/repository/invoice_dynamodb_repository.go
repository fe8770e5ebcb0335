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

const defaultInvoicesTableName = "invoices"

type paymentRecord struct {
	ID        string `dynamodbav:"id"`
	Amount    string `dynamodbav:"amount"`
	Date      string `dynamodbav:"date"`
	Method    string `dynamodbav:"method"`
	Reference string `dynamodbav:"reference,omitempty"`
}

type reminderRecord struct {
	Level    int    `dynamodbav:"level"`
	RaisedAt string `dynamodbav:"raised_at"`
	DueDate  string `dynamodbav:"due_date"`
	Fee      string `dynamodbav:"fee"`
}

type invoiceItem struct {
	ID         string `dynamodbav:"id"`
	Number     string `dynamodbav:"number,omitempty"`
	CustomerID string `dynamodbav:"customer_id"`
	ProjectID  string `dynamodbav:"project_id,omitempty"`
	QuoteID    string `dynamodbav:"quote_id,omitempty"`

	IssueDate string `dynamodbav:"issue_date"`
	DueDate   string `dynamodbav:"due_date"`

	Status        string               `dynamodbav:"status"`
	StatusHistory []statusChangeRecord `dynamodbav:"status_history,omitempty"`
	SendLog       []sendLogRecord      `dynamodbav:"send_log,omitempty"`

	Items []lineItemRecord `dynamodbav:"items"`

	DiscountPercent string `dynamodbav:"discount_percent"`
	DiscountAmount  string `dynamodbav:"discount_amount"`

	NetTotal      string           `dynamodbav:"net_total"`
	TotalDiscount string           `dynamodbav:"total_discount"`
	TaxBreakdown  []taxGroupRecord `dynamodbav:"tax_breakdown,omitempty"`
	TaxTotal      string           `dynamodbav:"tax_total"`
	GrossTotal    string           `dynamodbav:"gross_total"`

	Payments          []paymentRecord `dynamodbav:"payments,omitempty"`
	PaidAmount        string          `dynamodbav:"paid_amount"`
	OutstandingAmount string          `dynamodbav:"outstanding_amount"`

	Reminders []reminderRecord `dynamodbav:"reminders,omitempty"`

	Notes   string `dynamodbav:"notes,omitempty"`
	Version int    `dynamodbav:"version"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Same write discipline as the quote repository: whole-document puts behind
// a version condition, ErrVersionConflict for lost races.
type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client, tableName string) *InvoiceDynamoRepository {
	if tableName == "" {
		tableName = defaultInvoicesTableName
	}
	return &InvoiceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv *entities.Invoice) error {
	it := toInvoiceItem(inv)
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
	inv.Version = 1
	return nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (*entities.Invoice, error) {
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

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) Save(ctx context.Context, inv *entities.Invoice) error {
	expected := inv.Version
	it := toInvoiceItem(inv)
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
	inv.Version = expected + 1
	return nil
}

func (r *InvoiceDynamoRepository) ListDunnable(ctx context.Context, cutoff time.Time) ([]*entities.Invoice, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status IN (:sent, :partially_paid, :overdue, :dunned)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sent":           &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusSent)},
			":partially_paid": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPartiallyPaid)},
			":overdue":        &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusOverdue)},
			":dunned":         &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusDunned)},
		},
	}

	var invoices []*entities.Invoice
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it invoiceItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			inv := fromInvoiceItem(it)
			if !inv.DueDate.IsZero() && inv.DueDate.Before(cutoff) {
				invoices = append(invoices, inv)
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return invoices, nil
}

func toInvoiceItem(inv *entities.Invoice) invoiceItem {
	payments := make([]paymentRecord, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = paymentRecord{
			ID:        p.ID,
			Amount:    decToString(p.Amount),
			Date:      timeToString(p.Date),
			Method:    p.Method,
			Reference: p.Reference,
		}
	}
	reminders := make([]reminderRecord, len(inv.Reminders))
	for i, rm := range inv.Reminders {
		reminders[i] = reminderRecord{
			Level:    rm.Level,
			RaisedAt: timeToString(rm.RaisedAt),
			DueDate:  timeToString(rm.DueDate),
			Fee:      decToString(rm.Fee),
		}
	}

	return invoiceItem{
		ID:                inv.ID,
		Number:            inv.Number,
		CustomerID:        inv.CustomerID,
		ProjectID:         inv.ProjectID,
		QuoteID:           inv.QuoteID,
		IssueDate:         timeToString(inv.IssueDate),
		DueDate:           timeToString(inv.DueDate),
		Status:            string(inv.Status),
		StatusHistory:     toStatusChangeRecords(inv.StatusHistory),
		SendLog:           toSendLogRecords(inv.SendLog),
		Items:             toLineItemRecords(inv.Items),
		DiscountPercent:   rateToString(inv.DiscountPercent),
		DiscountAmount:    decToString(inv.DiscountAmount),
		NetTotal:          decToString(inv.NetTotal),
		TotalDiscount:     decToString(inv.TotalDiscount),
		TaxBreakdown:      toTaxGroupRecords(inv.TaxBreakdown),
		TaxTotal:          decToString(inv.TaxTotal),
		GrossTotal:        decToString(inv.GrossTotal),
		Payments:          payments,
		PaidAmount:        decToString(inv.PaidAmount),
		OutstandingAmount: decToString(inv.OutstandingAmount),
		Reminders:         reminders,
		Notes:             inv.Notes,
		Version:           inv.Version,
		CreatedAt:         timeToString(inv.CreatedAt),
		UpdatedAt:         timeToString(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) *entities.Invoice {
	var payments []entities.Payment
	if len(it.Payments) > 0 {
		payments = make([]entities.Payment, len(it.Payments))
		for i, p := range it.Payments {
			payments[i] = entities.Payment{
				ID:        p.ID,
				Amount:    stringToDec(p.Amount),
				Date:      stringToTime(p.Date),
				Method:    p.Method,
				Reference: p.Reference,
			}
		}
	}
	var reminders []entities.Reminder
	if len(it.Reminders) > 0 {
		reminders = make([]entities.Reminder, len(it.Reminders))
		for i, rm := range it.Reminders {
			reminders[i] = entities.Reminder{
				Level:    rm.Level,
				RaisedAt: stringToTime(rm.RaisedAt),
				DueDate:  stringToTime(rm.DueDate),
				Fee:      stringToDec(rm.Fee),
			}
		}
	}

	return &entities.Invoice{
		ID:                it.ID,
		Number:            it.Number,
		CustomerID:        it.CustomerID,
		ProjectID:         it.ProjectID,
		QuoteID:           it.QuoteID,
		IssueDate:         stringToTime(it.IssueDate),
		DueDate:           stringToTime(it.DueDate),
		Status:            entities.InvoiceStatus(it.Status),
		StatusHistory:     fromStatusChangeRecords(it.StatusHistory),
		SendLog:           fromSendLogRecords(it.SendLog),
		Items:             fromLineItemRecords(it.Items),
		DiscountPercent:   stringToDec(it.DiscountPercent),
		DiscountAmount:    stringToDec(it.DiscountAmount),
		NetTotal:          stringToDec(it.NetTotal),
		TotalDiscount:     stringToDec(it.TotalDiscount),
		TaxBreakdown:      fromTaxGroupRecords(it.TaxBreakdown),
		TaxTotal:          stringToDec(it.TaxTotal),
		GrossTotal:        stringToDec(it.GrossTotal),
		Payments:          payments,
		PaidAmount:        stringToDec(it.PaidAmount),
		OutstandingAmount: stringToDec(it.OutstandingAmount),
		Reminders:         reminders,
		Notes:             it.Notes,
		Version:           it.Version,
		CreatedAt:         stringToTime(it.CreatedAt),
		UpdatedAt:         stringToTime(it.UpdatedAt),
	}
}

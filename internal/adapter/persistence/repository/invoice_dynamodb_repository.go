package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName = "invoices"
	invoicesEstimateIDIndex  = "estimate_id-index"
	invoicesIntentIDIndex    = "payment_intent_id-index"
	invoicesUserIDIndex      = "user_id-index"
	invoicesStatusIndex      = "status-index"
)

type invoiceItem struct {
	ID              string  `dynamodbav:"id"`
	EstimateID      string  `dynamodbav:"estimate_id"`
	UserID          string  `dynamodbav:"user_id"`
	UserEmail       string  `dynamodbav:"user_email,omitempty"`
	UserName        string  `dynamodbav:"user_name,omitempty"`
	AmountCents     int64   `dynamodbav:"amount_cents"`
	TaxRatePercent  float64 `dynamodbav:"tax_rate_percent"`
	Status          string  `dynamodbav:"status"`
	DueDate         string  `dynamodbav:"due_date"`
	PaidAt          string  `dynamodbav:"paid_at,omitempty"`
	PaymentIntentID string  `dynamodbav:"payment_intent_id,omitempty"`
	CreatedAt       string  `dynamodbav:"created_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: estimate_id-index (PK: estimate_id)
//   - GSI: payment_intent_id-index (PK: payment_intent_id)
//   - GSI: user_id-index (PK: user_id)
//   - GSI: status-index (PK: status)
//
// payment_intent_id uses omitempty: a cleared reference removes the
// attribute, which drops the item from payment_intent_id-index.
//
// MarkPaid is the only writer of status=paid and is guarded by a
// ConditionExpression on the current status. ConditionalCheckFailed
// maps to a zero-value Invoice, the "already handled" signal.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	it := toInvoiceItem(inv)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByEstimateID(ctx context.Context, estimateID string) (entities.Invoice, error) {
	return r.queryOne(ctx, invoicesEstimateIDIndex, "estimate_id = :v", estimateID)
}

func (r *InvoiceDynamoRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (entities.Invoice, error) {
	if intentID == "" {
		return entities.Invoice{}, nil
	}
	return r.queryOne(ctx, invoicesIntentIDIndex, "payment_intent_id = :v", intentID)
}

func (r *InvoiceDynamoRepository) queryOne(ctx context.Context, index, keyCond, value string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(keyCond),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalInvoiceItems(out.Items)
}

func (r *InvoiceDynamoRepository) ListPendingWithIntent(ctx context.Context, userID string) ([]entities.Invoice, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesStatusIndex),
		KeyConditionExpression: aws.String("#status = :pending"),
		FilterExpression:       aws.String("attribute_exists(payment_intent_id)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPending)},
		},
	}
	if userID != "" {
		in.FilterExpression = aws.String("attribute_exists(payment_intent_id) AND user_id = :uid")
		in.ExpressionAttributeValues[":uid"] = &types.AttributeValueMemberS{Value: userID}
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalInvoiceItems(out.Items)
}

func (r *InvoiceDynamoRepository) ListRecent(ctx context.Context, limit int) ([]entities.Invoice, error) {
	out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}

	items, err := unmarshalInvoiceItems(out.Items)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *InvoiceDynamoRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time, allowOverdue bool) (entities.Invoice, error) {
	condition := "attribute_exists(#id) AND #status = :pending"
	values := map[string]types.AttributeValue{
		":paid":    &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)},
		":pending": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPending)},
		":paid_at": &types.AttributeValueMemberS{Value: formatTime(paidAt)},
	}
	if allowOverdue {
		condition = "attribute_exists(#id) AND (#status = :pending OR #status = :overdue)"
		values[":overdue"] = &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusOverdue)}
	}

	return r.update(ctx, id,
		"SET #status = :paid, #paid_at = :paid_at",
		condition,
		values,
		map[string]string{
			"#status":  "status",
			"#paid_at": "paid_at",
		},
	)
}

func (r *InvoiceDynamoRepository) MarkOverdue(ctx context.Context, id string) (entities.Invoice, error) {
	return r.update(ctx, id,
		"SET #status = :overdue",
		"attribute_exists(#id)",
		map[string]types.AttributeValue{
			":overdue": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusOverdue)},
		},
		map[string]string{
			"#status": "status",
		},
	)
}

func (r *InvoiceDynamoRepository) SetPaymentIntentID(ctx context.Context, id, intentID string) (entities.Invoice, error) {
	if intentID == "" {
		return r.update(ctx, id,
			"REMOVE #payment_intent_id",
			"attribute_exists(#id)",
			nil,
			map[string]string{
				"#payment_intent_id": "payment_intent_id",
			},
		)
	}

	return r.update(ctx, id,
		"SET #payment_intent_id = :intent",
		"attribute_exists(#id)",
		map[string]types.AttributeValue{
			":intent": &types.AttributeValueMemberS{Value: intentID},
		},
		map[string]string{
			"#payment_intent_id": "payment_intent_id",
		},
	)
}

func (r *InvoiceDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Invoice, error) {
	in := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:      aws.String(conditionExpr),
		UpdateExpression:         aws.String(updateExpr),
		ExpressionAttributeNames: mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:             types.ReturnValueAllNew,
	}
	if len(values) > 0 {
		in.ExpressionAttributeValues = values
	}

	out, err := r.ddb.UpdateItem(ctx, in)
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, nil
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func unmarshalInvoiceItems(raw []map[string]types.AttributeValue) ([]entities.Invoice, error) {
	items := make([]entities.Invoice, 0, len(raw))
	for _, m := range raw {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromInvoiceItem(it))
	}
	return items, nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:              inv.ID,
		EstimateID:      inv.EstimateID,
		UserID:          inv.UserID,
		UserEmail:       inv.UserEmail,
		UserName:        inv.UserName,
		AmountCents:     inv.AmountCents,
		TaxRatePercent:  inv.TaxRatePercent,
		Status:          string(inv.Status),
		DueDate:         formatTime(inv.DueDate),
		PaidAt:          formatTimePtr(inv.PaidAt),
		PaymentIntentID: inv.PaymentIntentID,
		CreatedAt:       formatTime(inv.CreatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:              it.ID,
		EstimateID:      it.EstimateID,
		UserID:          it.UserID,
		UserEmail:       it.UserEmail,
		UserName:        it.UserName,
		AmountCents:     it.AmountCents,
		TaxRatePercent:  it.TaxRatePercent,
		Status:          entities.InvoiceStatus(it.Status),
		DueDate:         parseTime(it.DueDate),
		PaidAt:          parseTimePtr(it.PaidAt),
		PaymentIntentID: it.PaymentIntentID,
		CreatedAt:       parseTime(it.CreatedAt),
	}
}

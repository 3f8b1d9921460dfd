package repository

import (
	"context"
	"errors"
	"time"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEstimatesTableName = "estimates"
	estimatesUserIDIndex      = "user_id-index"
)

type estimateItem struct {
	ID              string   `dynamodbav:"id"`
	UserID          string   `dynamodbav:"user_id"`
	Title           string   `dynamodbav:"title"`
	Description     string   `dynamodbav:"description,omitempty"`
	PriceMinCents   *int64   `dynamodbav:"price_min_cents,omitempty"`
	PriceMaxCents   *int64   `dynamodbav:"price_max_cents,omitempty"`
	FinalPriceCents *int64   `dynamodbav:"final_price_cents,omitempty"`
	TaxRatePercent  *float64 `dynamodbav:"tax_rate_percent,omitempty"`
	Status          string   `dynamodbav:"status"`
	ApprovedByUser  bool     `dynamodbav:"approved_by_user"`
	CreatedAt       string   `dynamodbav:"created_at"`
	FinalizedAt     string   `dynamodbav:"finalized_at,omitempty"`
	UpdatedAt       string   `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// Status transitions use ConditionExpression on the current status so a
// losing concurrent writer gets a ConditionalCheckFailedException, which
// we surface as a zero-value entity.

type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	it := toEstimateItem(e)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Estimate{}, err
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
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Estimate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Estimate, 0, len(out.Items))
	for _, raw := range out.Items {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromEstimateItem(it))
	}
	return items, nil
}

func (r *EstimateDynamoRepository) Finalize(ctx context.Context, id string, totalCents int64, taxRatePercent float64, finalizedAt time.Time) (entities.Estimate, error) {
	return r.update(ctx, id,
		"SET #final_price_cents = :total, #tax_rate_percent = :rate, #status = :finalized, #finalized_at = :at, #updated_at = :at",
		"attribute_exists(#id) AND #status = :pending",
		map[string]types.AttributeValue{
			":total":     &types.AttributeValueMemberN{Value: int64ToN(totalCents)},
			":rate":      &types.AttributeValueMemberN{Value: floatToN(taxRatePercent)},
			":finalized": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusFinalized)},
			":pending":   &types.AttributeValueMemberS{Value: string(entities.EstimateStatusPending)},
			":at":        &types.AttributeValueMemberS{Value: formatTime(finalizedAt)},
		},
		map[string]string{
			"#final_price_cents": "final_price_cents",
			"#tax_rate_percent":  "tax_rate_percent",
			"#status":            "status",
			"#finalized_at":      "finalized_at",
			"#updated_at":        "updated_at",
		},
	)
}

func (r *EstimateDynamoRepository) MarkApproved(ctx context.Context, id string) (entities.Estimate, error) {
	now := time.Now().UTC()
	return r.update(ctx, id,
		"SET #status = :approved, #approved_by_user = :yes, #updated_at = :now",
		"attribute_exists(#id) AND #status = :finalized AND #approved_by_user = :no",
		map[string]types.AttributeValue{
			":approved":  &types.AttributeValueMemberS{Value: string(entities.EstimateStatusApproved)},
			":finalized": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusFinalized)},
			":yes":       &types.AttributeValueMemberBOOL{Value: true},
			":no":        &types.AttributeValueMemberBOOL{Value: false},
			":now":       &types.AttributeValueMemberS{Value: formatTime(now)},
		},
		map[string]string{
			"#status":           "status",
			"#approved_by_user": "approved_by_user",
			"#updated_at":       "updated_at",
		},
	)
}

func (r *EstimateDynamoRepository) MarkRejected(ctx context.Context, id string) (entities.Estimate, error) {
	now := time.Now().UTC()
	return r.update(ctx, id,
		"SET #status = :rejected, #updated_at = :now",
		"attribute_exists(#id) AND #status = :finalized AND #approved_by_user = :no",
		map[string]types.AttributeValue{
			":rejected":  &types.AttributeValueMemberS{Value: string(entities.EstimateStatusRejected)},
			":finalized": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusFinalized)},
			":no":        &types.AttributeValueMemberBOOL{Value: false},
			":now":       &types.AttributeValueMemberS{Value: formatTime(now)},
		},
		map[string]string{
			"#status":           "status",
			"#approved_by_user": "approved_by_user",
			"#updated_at":       "updated_at",
		},
	)
}

func (r *EstimateDynamoRepository) RevertApproval(ctx context.Context, id string) (entities.Estimate, error) {
	now := time.Now().UTC()
	return r.update(ctx, id,
		"SET #status = :finalized, #approved_by_user = :no, #updated_at = :now",
		"attribute_exists(#id)",
		map[string]types.AttributeValue{
			":finalized": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusFinalized)},
			":no":        &types.AttributeValueMemberBOOL{Value: false},
			":now":       &types.AttributeValueMemberS{Value: formatTime(now)},
		},
		map[string]string{
			"#status":           "status",
			"#approved_by_user": "approved_by_user",
			"#updated_at":       "updated_at",
		},
	)
}

func (r *EstimateDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Estimate, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(conditionExpr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:              e.ID,
		UserID:          e.UserID,
		Title:           e.Title,
		Description:     e.Description,
		PriceMinCents:   e.PriceMinCents,
		PriceMaxCents:   e.PriceMaxCents,
		FinalPriceCents: e.FinalPriceCents,
		TaxRatePercent:  e.TaxRatePercent,
		Status:          string(e.Status),
		ApprovedByUser:  e.ApprovedByUser,
		CreatedAt:       formatTime(e.CreatedAt),
		FinalizedAt:     formatTimePtr(e.FinalizedAt),
		UpdatedAt:       formatTime(e.CreatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	return entities.Estimate{
		ID:              it.ID,
		UserID:          it.UserID,
		Title:           it.Title,
		Description:     it.Description,
		PriceMinCents:   it.PriceMinCents,
		PriceMaxCents:   it.PriceMaxCents,
		FinalPriceCents: it.FinalPriceCents,
		TaxRatePercent:  it.TaxRatePercent,
		Status:          entities.EstimateStatus(it.Status),
		ApprovedByUser:  it.ApprovedByUser,
		CreatedAt:       parseTime(it.CreatedAt),
		FinalizedAt:     parseTimePtr(it.FinalizedAt),
	}
}

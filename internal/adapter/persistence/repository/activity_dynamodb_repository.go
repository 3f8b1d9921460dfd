package repository

import (
	"context"
	"errors"

	"clientdesk/internal/domain/entities"
	"clientdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultActivityTableName = "activity"
	activityUserIDIndex      = "user_id-index"
)

type activityItem struct {
	ID          string            `dynamodbav:"id"`
	UserID      string            `dynamodbav:"user_id"`
	Type        string            `dynamodbav:"type"`
	Description string            `dynamodbav:"description"`
	Metadata    map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt   string            `dynamodbav:"created_at"`
}

// ActivityDynamoRepository persists the append-only activity log.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
//
// CreateUnique relies on the caller supplying a deterministic dedup id;
// the conditional put turns "insert if absent" into a single atomic
// write instead of a check-then-insert pair.

type ActivityDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IActivityRepository = (*ActivityDynamoRepository)(nil)

func NewActivityDynamoRepository(ddb *dynamodb.Client) *ActivityDynamoRepository {
	return &ActivityDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ACTIVITY_TABLE", defaultActivityTableName),
	}
}

func (r *ActivityDynamoRepository) Create(ctx context.Context, rec entities.ActivityRecord) error {
	av, err := attributevalue.MarshalMap(toActivityItem(rec))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *ActivityDynamoRepository) CreateUnique(ctx context.Context, rec entities.ActivityRecord) (bool, error) {
	av, err := attributevalue.MarshalMap(toActivityItem(rec))
	if err != nil {
		return false, err
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
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ActivityDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.ActivityRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(activityUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.ActivityRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var it activityItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromActivityItem(it))
	}
	return items, nil
}

func toActivityItem(rec entities.ActivityRecord) activityItem {
	return activityItem{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Type:        string(rec.Type),
		Description: rec.Description,
		Metadata:    rec.Metadata,
		CreatedAt:   formatTime(rec.CreatedAt),
	}
}

func fromActivityItem(it activityItem) entities.ActivityRecord {
	return entities.ActivityRecord{
		ID:          it.ID,
		UserID:      it.UserID,
		Type:        entities.ActivityType(it.Type),
		Description: it.Description,
		Metadata:    it.Metadata,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}

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
	defaultProjectsTableName = "projects"
	projectsUserIDIndex      = "user_id-index"
)

type projectItem struct {
	InvoiceID   string `dynamodbav:"invoice_id"`
	ID          string `dynamodbav:"id"`
	UserID      string `dynamodbav:"user_id"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description,omitempty"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: invoice_id (string)
//   - GSI: user_id-index (PK: user_id)
//
// We purposely use the invoice id as PK to guarantee one project per
// paid invoice: the conditional put is the uniqueness constraint, no
// pre-read needed.

type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) CreateIfAbsent(ctx context.Context, p entities.Project) (bool, error) {
	it := toProjectItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#invoice_id)"),
		ExpressionAttributeNames: map[string]string{
			"#invoice_id": "invoice_id",
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

func (r *ProjectDynamoRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"invoice_id": &types.AttributeValueMemberS{Value: invoiceID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Project, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(projectsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Project, 0, len(out.Items))
	for _, raw := range out.Items {
		var it projectItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromProjectItem(it))
	}
	return items, nil
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		InvoiceID:   p.InvoiceID,
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		InvoiceID:   it.InvoiceID,
		ID:          it.ID,
		UserID:      it.UserID,
		Title:       it.Title,
		Description: it.Description,
		Status:      entities.ProjectStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
	}
}

package archive

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Entry describes an accessioned bag.
type Entry struct {
	PackageID   string `dynamodbav:"packageID"`
	Path        string `dynamodbav:"path"`
	Filename    string `dynamodbav:"filename"`
	Title       string `dynamodbav:"title"`
	SortKey     string `dynamodbav:"sortKey"`
	Accessioned string `dynamodbav:"accessioned"`
}

// Catalog keeps track of the bags in the archive.
type Catalog interface {
	Register(ctx context.Context, entry Entry) error
	Lookup(ctx context.Context, packageID string) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
}

type catalogDynamoDBImpl struct {
	DynamoDB dynamodbiface.DynamoDBAPI
	Table    string
}

var _ Catalog = (*catalogDynamoDBImpl)(nil)

func NewCatalogDynamoDB(client dynamodbiface.DynamoDBAPI, table string) *catalogDynamoDBImpl {
	return &catalogDynamoDBImpl{
		DynamoDB: client,
		Table:    table,
	}
}

func (c *catalogDynamoDBImpl) Register(ctx context.Context, entry Entry) error {
	item, err := dynamodbattribute.MarshalMap(entry)
	if err != nil {
		return err
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.Table),
		Item:      item,
	}
	_, err = c.DynamoDB.PutItemWithContext(ctx, input)
	return errors.Wrap(err, "cannot register package")
}

func (c *catalogDynamoDBImpl) Lookup(ctx context.Context, packageID string) (*Entry, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.Table),
		Key: map[string]*dynamodb.AttributeValue{
			"packageID": {S: aws.String(packageID)},
		},
	}
	output, err := c.DynamoDB.GetItemWithContext(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "cannot look up package")
	}
	if output.Item == nil {
		return nil, errors.Wrap(ErrNotFound, packageID)
	}
	entry := &Entry{}
	if err := dynamodbattribute.UnmarshalMap(output.Item, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns every entry ordered by sort key.
func (c *catalogDynamoDBImpl) List(ctx context.Context) ([]Entry, error) {
	entries := []Entry{}
	input := &dynamodb.ScanInput{
		TableName:      aws.String(c.Table),
		ConsistentRead: aws.Bool(true),
	}
	for {
		res, err := c.DynamoDB.ScanWithContext(ctx, input)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan catalog")
		}
		recs := []Entry{}
		if err := dynamodbattribute.UnmarshalListOfMaps(res.Items, &recs); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal catalog entries")
		}
		entries = append(entries, recs...)
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = res.LastEvaluatedKey
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].SortKey < entries[j].SortKey })
	return entries, nil
}

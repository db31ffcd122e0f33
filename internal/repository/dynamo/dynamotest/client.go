// Package dynamotest provides an in-memory stand-in for the DynamoDB client.
//
// It understands hash-keyed tables, secondary indexes with a string sort key,
// equality expressions of the form "#name = :value" or "name = :value", and
// paging through LastEvaluatedKey. Nothing else is emulated.
package dynamotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	OpGetItem    = "GetItem"
	OpPutItem    = "PutItem"
	OpDeleteItem = "DeleteItem"
	OpQuery      = "Query"
	OpScan       = "Scan"
)

type index struct {
	hashKey string
	sortKey string
}

type table struct {
	hashKey string
	items   map[string]map[string]types.AttributeValue
	indexes map[string]index
}

type Client struct {
	// PageSize caps the number of items evaluated per Query or Scan call.
	// Zero means unlimited.
	PageSize int

	mu     sync.Mutex
	tables map[string]*table
	faults map[string]error
	calls  map[string]int
}

func New() *Client {
	return &Client{
		tables: make(map[string]*table),
		faults: make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (c *Client) CreateTable(name, hashKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = &table{
		hashKey: hashKey,
		items:   make(map[string]map[string]types.AttributeValue),
		indexes: make(map[string]index),
	}
}

func (c *Client) AddIndex(tableName, indexName, hashKey, sortKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[tableName].indexes[indexName] = index{hashKey: hashKey, sortKey: sortKey}
}

// FailOn makes every call to op return err until cleared with a nil err.
func (c *Client) FailOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.faults, op)
		return
	}
	c.faults[op] = err
}

func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *Client) Len(tableName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// Item returns the stored item with the given hash key, or nil.
func (c *Client) Item(tableName, key string) map[string]types.AttributeValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[tableName]; ok {
		return t.items[key]
	}
	return nil
}

// PutRaw stores item as is, bypassing any marshalling.
func (c *Client) PutRaw(tableName string, item map[string]types.AttributeValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tables[tableName]
	t.items[stringAttr(item, t.hashKey)] = item
}

func (c *Client) begin(op string, tableName *string) (*table, error) {
	c.calls[op]++
	if err := c.faults[op]; err != nil {
		return nil, err
	}
	t, ok := c.tables[aws.ToString(tableName)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String(fmt.Sprintf("table %q not found", aws.ToString(tableName)))}
	}
	return t, nil
}

func (c *Client) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.begin(OpGetItem, in.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: copyItem(t.items[stringAttr(in.Key, t.hashKey)])}, nil
}

func (c *Client) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.begin(OpPutItem, in.TableName)
	if err != nil {
		return nil, err
	}
	key := stringAttr(in.Item, t.hashKey)
	if key == "" {
		return nil, fmt.Errorf("item is missing hash key %q", t.hashKey)
	}
	t.items[key] = copyItem(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (c *Client) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.begin(OpDeleteItem, in.TableName)
	if err != nil {
		return nil, err
	}
	delete(t.items, stringAttr(in.Key, t.hashKey))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (c *Client) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.begin(OpQuery, in.TableName)
	if err != nil {
		return nil, err
	}
	if in.Limit != nil && *in.Limit < 1 {
		return nil, fmt.Errorf("ValidationException: Limit must be at least 1, got %d", *in.Limit)
	}
	idx, ok := t.indexes[aws.ToString(in.IndexName)]
	if !ok {
		return nil, fmt.Errorf("index %q not found", aws.ToString(in.IndexName))
	}
	attr, value, err := parseEquality(aws.ToString(in.KeyConditionExpression), in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	if attr != idx.hashKey {
		return nil, fmt.Errorf("key condition must use index hash key %q", idx.hashKey)
	}

	var keys []string
	for k, item := range t.items {
		if stringAttr(item, attr) == value && hasAttr(item, idx.sortKey) {
			keys = append(keys, k)
		}
	}
	forward := in.ScanIndexForward == nil || *in.ScanIndexForward
	sort.Slice(keys, func(i, j int) bool {
		a, b := stringAttr(t.items[keys[i]], idx.sortKey), stringAttr(t.items[keys[j]], idx.sortKey)
		if a == b {
			return keys[i] < keys[j]
		}
		if forward {
			return a < b
		}
		return a > b
	})

	page, next := c.page(keys, t.hashKey, in.ExclusiveStartKey, aws.ToInt32(in.Limit))
	out := &dynamodb.QueryOutput{LastEvaluatedKey: next}
	for _, k := range page {
		out.Items = append(out.Items, copyItem(t.items[k]))
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (c *Client) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := c.begin(OpScan, in.TableName)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Like DynamoDB, the limit applies before the filter.
	page, next := c.page(keys, t.hashKey, in.ExclusiveStartKey, aws.ToInt32(in.Limit))
	out := &dynamodb.ScanOutput{LastEvaluatedKey: next, ScannedCount: int32(len(page))}

	filter := aws.ToString(in.FilterExpression)
	var attr, value string
	if filter != "" {
		if attr, value, err = parseEquality(filter, in.ExpressionAttributeNames, in.ExpressionAttributeValues); err != nil {
			return nil, err
		}
	}
	for _, k := range page {
		item := t.items[k]
		if filter != "" && stringAttr(item, attr) != value {
			continue
		}
		out.Items = append(out.Items, copyItem(item))
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

// page slices ordered keys after the start key. The returned key is non-nil
// when more items remain.
func (c *Client) page(keys []string, hashKey string, start map[string]types.AttributeValue, limit int32) ([]string, map[string]types.AttributeValue) {
	from := 0
	if start != nil {
		startKey := stringAttr(start, hashKey)
		for i, k := range keys {
			if k == startKey {
				from = i + 1
				break
			}
		}
	}

	size := len(keys) - from
	if c.PageSize > 0 && c.PageSize < size {
		size = c.PageSize
	}
	if limit > 0 && int(limit) < size {
		size = int(limit)
	}

	page := keys[from : from+size]
	if from+size >= len(keys) || len(page) == 0 {
		return page, nil
	}
	last := page[len(page)-1]
	return page, map[string]types.AttributeValue{hashKey: &types.AttributeValueMemberS{Value: last}}
}

func parseEquality(expr string, names map[string]string, values map[string]types.AttributeValue) (string, string, error) {
	parts := strings.Split(expr, "=")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unsupported expression %q", expr)
	}
	attr := strings.TrimSpace(parts[0])
	if strings.HasPrefix(attr, "#") {
		resolved, ok := names[attr]
		if !ok {
			return "", "", fmt.Errorf("undefined attribute name %s", attr)
		}
		attr = resolved
	}
	placeholder := strings.TrimSpace(parts[1])
	v, ok := values[placeholder].(*types.AttributeValueMemberS)
	if !ok {
		return "", "", fmt.Errorf("undefined or non-string value %s", placeholder)
	}
	return attr, v.Value, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func hasAttr(item map[string]types.AttributeValue, name string) bool {
	_, ok := item[name]
	return ok
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

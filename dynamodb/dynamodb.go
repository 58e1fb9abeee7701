package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moviecast/pkg/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const storeName = "dynamodb"

// maxBatchWrite is the BatchWriteItem request limit.
const maxBatchWrite = 25

// API is the part of the DynamoDB client the repositories use.
// *dynamodb.Client satisfies it.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type Options struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// NewClient builds the client shared by every repository for the lifetime
// of the process. It holds no per-request state.
func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("dynamodb: region is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}

	if opts.AccessKey != "" || opts.SecretKey != "" || opts.SessionToken != "" {
		if opts.AccessKey == "" || opts.SecretKey == "" {
			return nil, errors.New("dynamodb: access key and secret key must be set together")
		}
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return client, nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}

func observe(table string, start time.Time, err error) {
	metrics.StoreDuration.WithLabelValues(storeName, table).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreFailures.WithLabelValues(storeName, table).Inc()
	}
}

// decodeItem converts an item to plain Go values without dropping or
// defaulting any attribute. Numbers decode as float64.
func decodeItem(item map[string]types.AttributeValue) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(item))
	if err := attributevalue.UnmarshalMap(item, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// encodeItem converts a record to an item, requiring the given key
// attributes.
func encodeItem(record map[string]interface{}, keys ...string) (map[string]types.AttributeValue, error) {
	for _, k := range keys {
		if _, ok := record[k]; !ok {
			return nil, fmt.Errorf("missing key attribute %q", k)
		}
	}
	return attributevalue.MarshalMap(record)
}

// batchPut writes items in chunks of maxBatchWrite, resending unprocessed
// items a bounded number of times.
func batchPut(ctx context.Context, client API, table string, items []map[string]types.AttributeValue) error {
	const maxAttempts = 5

	for start := 0; start < len(items); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(items) {
			end = len(items)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		pending := map[string][]types.WriteRequest{table: requests}
		for attempt := 1; len(pending) > 0; attempt++ {
			if attempt > maxAttempts {
				return fmt.Errorf("dynamodb: batch write %s: %d items left unprocessed", table, len(pending[table]))
			}
			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return fmt.Errorf("dynamodb: batch write %s: %w", table, err)
			}
			pending = out.UnprocessedItems
		}
	}

	return nil
}

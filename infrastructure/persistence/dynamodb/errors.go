// Package dynamodb implements the persistence ports on DynamoDB tables with
// a fixed set of global secondary indexes. Every read maps to a declared
// index; nothing in this package scans.
package dynamodb

import (
	stderrors "errors"

	appErrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// Index names as provisioned on all three tables. The item table carries all
// of them; categories and tags only name and nameSort.
const (
	indexName         = "name"
	indexNameSort     = "nameSort"
	indexCategorySort = "categorySort"
	indexDateSort     = "dateSort"
)

// maxBatchWriteItems is the DynamoDB BatchWriteItem limit.
const maxBatchWriteItems = 25

// mapError converts an SDK failure into the application error taxonomy.
// Conditional check failures surface as Conflict so callers can distinguish
// contention from infrastructure faults.
func mapError(operation string, err error) error {
	var conditionFailed *types.ConditionalCheckFailedException
	if stderrors.As(err, &conditionFailed) {
		return appErrors.NewConflictError("conditional check failed during " + operation)
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
			return appErrors.NewDatabaseError(operation+" throttled", err)
		}
	}
	return appErrors.NewDatabaseError(operation, err)
}

package interfaces

import "context"

// ISequenceRepository provides the persisted, atomically incremented counter
// behind document numbering.
//
// NextSequence must be an atomic increment-and-read per key (DynamoDB ADD
// with ReturnValues=ALL_NEW); deriving the next number by counting existing
// documents races under concurrent creation and must not be used.
type ISequenceRepository interface {
	NextSequence(ctx context.Context, key string) (int64, error)
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces"
)

var (
	ErrExhaustedSequence   = errors.New("document number sequence exhausted")
	ErrUnknownDocumentType = errors.New("unknown document type")
)

// maxSequence is the highest value the zero-padded 6-digit sequence can hold.
const maxSequence = 999999

var numberPrefixes = map[entities.DocumentType]string{
	entities.DocumentTypeQuote:      "AG",
	entities.DocumentTypeInvoice:    "RG",
	entities.DocumentTypeCostRecord: "PK",
}

// NumberingService issues year-scoped, strictly increasing document numbers
// of the form <PREFIX>-<YYYY>-<NNNNNN>, e.g. RG-2024-000123.
//
// Uniqueness under concurrent callers comes from the sequence repository's
// atomic increment; the service never derives a number from existing
// documents.
type NumberingService struct {
	sequences interfaces.ISequenceRepository
}

func NewNumberingService(sequences interfaces.ISequenceRepository) *NumberingService {
	return &NumberingService{sequences: sequences}
}

func (s *NumberingService) NextNumber(ctx context.Context, docType entities.DocumentType, year int) (string, error) {
	prefix, ok := numberPrefixes[docType]
	if !ok {
		return "", ErrUnknownDocumentType
	}

	key := fmt.Sprintf("%s-%04d", prefix, year)
	seq, err := s.sequences.NextSequence(ctx, key)
	if err != nil {
		return "", err
	}
	if seq > maxSequence {
		return "", ErrExhaustedSequence
	}

	return fmt.Sprintf("%s-%04d-%06d", prefix, year, seq), nil
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	mock_interfaces "github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase/interfaces/mocks"
)

// atomicSequences mimics the DynamoDB ADD counter: one atomic counter per key.
type atomicSequences struct {
	mu       sync.Mutex
	counters map[string]*int64
}

func newAtomicSequences() *atomicSequences {
	return &atomicSequences{counters: map[string]*int64{}}
}

func (s *atomicSequences) NextSequence(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	counter, ok := s.counters[key]
	if !ok {
		counter = new(int64)
		s.counters[key] = counter
	}
	s.mu.Unlock()
	return atomic.AddInt64(counter, 1), nil
}

func TestNumberingService_NextNumber(t *testing.T) {
	t.Run("formats prefix, year and padded sequence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sequences := mock_interfaces.NewMockISequenceRepository(ctrl)
		svc := NewNumberingService(sequences)

		sequences.EXPECT().NextSequence(gomock.Any(), "RG-2026").Return(int64(123), nil)

		number, err := svc.NextNumber(context.Background(), entities.DocumentTypeInvoice, 2026)
		if err != nil {
			t.Fatalf("next number: %v", err)
		}
		if number != "RG-2026-000123" {
			t.Fatalf("number = %q", number)
		}
	})

	t.Run("prefix per document type", func(t *testing.T) {
		seqs := newAtomicSequences()
		svc := NewNumberingService(seqs)

		cases := map[entities.DocumentType]string{
			entities.DocumentTypeQuote:      "AG-2026-000001",
			entities.DocumentTypeInvoice:    "RG-2026-000001",
			entities.DocumentTypeCostRecord: "PK-2026-000001",
		}
		for docType, want := range cases {
			got, err := svc.NextNumber(context.Background(), docType, 2026)
			if err != nil {
				t.Fatalf("%s: %v", docType, err)
			}
			if got != want {
				t.Fatalf("%s: got %q, want %q", docType, got, want)
			}
		}
	})

	t.Run("sequences are year scoped", func(t *testing.T) {
		seqs := newAtomicSequences()
		svc := NewNumberingService(seqs)

		if n, _ := svc.NextNumber(context.Background(), entities.DocumentTypeInvoice, 2025); n != "RG-2025-000001" {
			t.Fatalf("2025: %q", n)
		}
		if n, _ := svc.NextNumber(context.Background(), entities.DocumentTypeInvoice, 2025); n != "RG-2025-000002" {
			t.Fatalf("2025 second: %q", n)
		}
		if n, _ := svc.NextNumber(context.Background(), entities.DocumentTypeInvoice, 2026); n != "RG-2026-000001" {
			t.Fatalf("2026 restarts: %q", n)
		}
	})

	t.Run("unknown document type", func(t *testing.T) {
		svc := NewNumberingService(newAtomicSequences())
		_, err := svc.NextNumber(context.Background(), entities.DocumentType("order"), 2026)
		if !errors.Is(err, ErrUnknownDocumentType) {
			t.Fatalf("expected ErrUnknownDocumentType, got %v", err)
		}
	})

	t.Run("exhausted sequence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sequences := mock_interfaces.NewMockISequenceRepository(ctrl)
		svc := NewNumberingService(sequences)

		sequences.EXPECT().NextSequence(gomock.Any(), "AG-2026").Return(int64(1000000), nil)

		_, err := svc.NextNumber(context.Background(), entities.DocumentTypeQuote, 2026)
		if !errors.Is(err, ErrExhaustedSequence) {
			t.Fatalf("expected ErrExhaustedSequence, got %v", err)
		}
	})

	t.Run("repository error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sequences := mock_interfaces.NewMockISequenceRepository(ctrl)
		svc := NewNumberingService(sequences)

		sequences.EXPECT().NextSequence(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("throttled"))

		_, err := svc.NextNumber(context.Background(), entities.DocumentTypeQuote, 2026)
		if err == nil || err.Error() != "throttled" {
			t.Fatalf("expected throttled error, got %v", err)
		}
	})

	t.Run("no duplicates under concurrent callers", func(t *testing.T) {
		svc := NewNumberingService(newAtomicSequences())

		const workers = 20
		const perWorker = 25

		var mu sync.Mutex
		seen := map[string]bool{}
		var wg sync.WaitGroup

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					number, err := svc.NextNumber(context.Background(), entities.DocumentTypeInvoice, 2026)
					if err != nil {
						t.Errorf("next number: %v", err)
						return
					}
					mu.Lock()
					if seen[number] {
						t.Errorf("duplicate number %s", number)
					}
					seen[number] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if len(seen) != workers*perWorker {
			t.Fatalf("expected %d unique numbers, got %d", workers*perWorker, len(seen))
		}
	})
}

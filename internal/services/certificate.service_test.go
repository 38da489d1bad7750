package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSequence struct {
	counter int64
	err     error
}

func (s *stubSequence) NextSequence(ctx context.Context, name string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return atomic.AddInt64(&s.counter, 1), nil
}

func TestCertificateService_Normalize(t *testing.T) {
	service := NewCertificateService(&stubSequence{}, "BWS-")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare digits get the prefix",
			input:    "1234",
			expected: "BWS-1234",
		},
		{
			name:     "already prefixed is unchanged",
			input:    "BWS-1234",
			expected: "BWS-1234",
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  5678 ",
			expected: "BWS-5678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Normalize(tt.input))
		})
	}
}

func TestCertificateService_AllocatePreferred(t *testing.T) {
	sequence := &stubSequence{}
	service := NewCertificateService(sequence, "BWS-")

	number := service.Allocate(context.Background(), "1234")
	assert.Equal(t, "BWS-1234", number)
	assert.Zero(t, sequence.counter, "preferred number must not consume the sequence")

	number = service.Allocate(context.Background(), "BWS-9876")
	assert.Equal(t, "BWS-9876", number, "no double prefixing")
}

func TestCertificateService_AllocateFromSequence(t *testing.T) {
	sequence := &stubSequence{counter: 9999}
	service := NewCertificateService(sequence, "BWS-")

	assert.Equal(t, "BWS-10000", service.Allocate(context.Background(), ""))
	assert.Equal(t, "BWS-10001", service.Allocate(context.Background(), ""))
}

func TestCertificateService_ConcurrentAllocationsDistinct(t *testing.T) {
	sequence := &stubSequence{}
	service := NewCertificateService(sequence, "BWS-")

	const workers = 50
	results := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = service.Allocate(context.Background(), "")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, number := range results {
		require.False(t, seen[number], "duplicate certificate number %s", number)
		seen[number] = true
	}
}

func TestCertificateService_FallbackOnSequenceFailure(t *testing.T) {
	sequence := &stubSequence{err: errors.New("sequence missing")}
	service := NewCertificateService(sequence, "BWS-")

	number := service.Allocate(context.Background(), "")
	assert.Regexp(t, regexp.MustCompile(`^BWS-\d{6}$`), number,
		"fallback is the prefixed last six digits of the clock")
}

func TestCertificateService_DefaultPrefix(t *testing.T) {
	service := NewCertificateService(&stubSequence{}, "")
	assert.Equal(t, "BWS-42", service.Normalize("42"))
}

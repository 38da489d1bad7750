package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equiptrack/internal/logger"
)

// CertificateSequence is the certificate number counter. The database
// implements it with a native atomic sequence; tests substitute an
// in-memory counter.
type CertificateSequence interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

const certificateSequenceName = "certificate_numbers"

// CertificateService allocates the human-facing certificate identifiers
// stamped on service records. Allocation never fails: when the sequence
// is unavailable it degrades to a timestamp-derived number, which is not
// guaranteed unique but keeps record creation working.
type CertificateService struct {
	sequence CertificateSequence
	prefix   string
	log      logger.Logger
}

func NewCertificateService(sequence CertificateSequence, prefix string) *CertificateService {
	if prefix == "" {
		prefix = "BWS-"
	}
	return &CertificateService{
		sequence: sequence,
		prefix:   prefix,
		log:      logger.New("CertificateService"),
	}
}

// Allocate returns the certificate number for a new record. A non-empty
// preferred value wins; otherwise the shared sequence is consulted, with
// a wall-clock fallback when the sequence read fails. The result always
// carries the prefix.
func (s *CertificateService) Allocate(ctx context.Context, preferred string) string {
	log := s.log.Function("Allocate")

	if strings.TrimSpace(preferred) != "" {
		return s.Normalize(preferred)
	}

	next, err := s.sequence.NextSequence(ctx, certificateSequenceName)
	if err != nil {
		fallback := s.fallbackNumber()
		log.Warn("sequence read failed, using timestamp fallback",
			"error", err, "fallback", fallback)
		return fallback
	}

	return s.Normalize(fmt.Sprintf("%d", next))
}

// Normalize prepends the prefix when missing. Already-prefixed numbers
// pass through untouched, never double-prefixed.
func (s *CertificateService) Normalize(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, s.prefix) {
		return number
	}
	return s.prefix + number
}

// fallbackNumber derives a number from the last six digits of the
// current unix-millis timestamp. Collisions are possible but vanishingly
// unlikely at the observed write rate.
func (s *CertificateService) fallbackNumber() string {
	return s.Normalize(fmt.Sprintf("%06d", time.Now().UnixMilli()%1000000))
}

package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// SlugService derives unique, URL-safe identifiers from human names,
// scoped to one table. A residual race between the uniqueness probe and
// the insert is acceptable; the unique index rejects the loser.
type SlugService interface {
	Assign(ctx context.Context, tx *gorm.DB, table, name string, excludeID *uuid.UUID) (string, error)
}

type slugService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSlugService(db *gorm.DB, baseLog *logger.Logger) SlugService {
	serviceLog := baseLog.With("service", "SlugService")
	return &slugService{db: db, log: serviceLog}
}

func (s *slugService) Assign(ctx context.Context, tx *gorm.DB, table, name string, excludeID *uuid.UUID) (string, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	base := Slugify(name)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		taken, err := s.slugTaken(ctx, transaction, table, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("probe slug %q in %s: %w", candidate, table, err)
		}
		if !taken {
			return candidate, nil
		}
		suffix, err := randomHex(4)
		if err != nil {
			return "", fmt.Errorf("slug suffix: %w", err)
		}
		candidate = base + "-" + suffix
	}
	return "", fmt.Errorf("could not find a free slug for %q in %s", name, table)
}

func (s *slugService) slugTaken(ctx context.Context, tx *gorm.DB, table, slug string, excludeID *uuid.UUID) (bool, error) {
	query := tx.WithContext(ctx).Table(table).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases, transliterates accented characters, and collapses
// every non-alphanumeric run into a single hyphen.
func Slugify(name string) string {
	flat, _, err := transform.String(stripMarks, name)
	if err != nil {
		flat = name
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/repository"
)

// DirectoryService serves the public talent directory.
type DirectoryService struct {
	db     repository.DBTX
	regs   repository.RegistrationRepository
	logger *slog.Logger
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(db repository.DBTX, regs repository.RegistrationRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{db: db, regs: regs, logger: logger}
}

// DirectoryParams are the raw directory filters as they arrive on the query
// string. Empty strings mean "no filter".
type DirectoryParams struct {
	Page     int
	Foot     string
	Position string
	Search   string
	AgeRange string
}

// Query returns one directory page. Filters combine with AND; the total is
// counted independently of the returned slice.
func (s *DirectoryService) Query(ctx context.Context, params DirectoryParams) (*domain.TalentPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	q := domain.TalentQuery{
		Foot:     params.Foot,
		Position: params.Position,
		Search:   params.Search,
		Page:     page,
	}
	if params.AgeRange != "" {
		minDOB, maxDOB, err := ageRangeToInterval(params.AgeRange, time.Now())
		if err != nil {
			return nil, err
		}
		q.MinDOB = &minDOB
		q.MaxDOB = &maxDOB
	}

	regs, err := s.regs.SearchTalents(ctx, s.db, q)
	if err != nil {
		return nil, domain.ErrInternal("search talents", err)
	}
	total, err := s.regs.CountTalents(ctx, s.db, q)
	if err != nil {
		return nil, domain.ErrInternal("count talents", err)
	}

	now := time.Now()
	entries := make([]domain.TalentEntry, 0, len(regs))
	for i := range regs {
		entries = append(entries, domain.TalentEntry{
			Identity: regs[i].Identity(),
			Age:      regs[i].Age(now),
		})
	}

	totalPages := (total + domain.TalentPageSize - 1) / domain.TalentPageSize
	return &domain.TalentPage{
		Talents:    entries,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// ProfileByNickname returns the public profile for a player nickname.
func (s *DirectoryService) ProfileByNickname(ctx context.Context, nickname string) (*domain.Registration, error) {
	if nickname == "" {
		return nil, domain.ErrValidation("nickname is required")
	}
	r, err := s.regs.FindByNickname(ctx, s.db, nickname)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound("player", nickname)
	}
	return r, nil
}

// ageRangeToInterval converts an age bucket ("18-21" or "20+") into the
// date-of-birth interval it selects. A person aged exactly max still matches,
// so the lower bound backs off one further year less a day.
func ageRangeToInterval(bucket string, now time.Time) (minDOB, maxDOB time.Time, err error) {
	var minAge, maxAge int
	switch {
	case strings.HasSuffix(bucket, "+"):
		minAge, err = strconv.Atoi(strings.TrimSuffix(bucket, "+"))
		maxAge = 100
	case strings.Contains(bucket, "-"):
		parts := strings.SplitN(bucket, "-", 2)
		minAge, err = strconv.Atoi(parts[0])
		if err == nil {
			maxAge, err = strconv.Atoi(parts[1])
		}
	default:
		minAge, err = strconv.Atoi(bucket)
		maxAge = minAge
	}
	if err != nil || minAge < 0 || maxAge < minAge {
		return time.Time{}, time.Time{}, domain.ErrValidation("invalid age range")
	}

	y, m, d := now.Date()
	maxDOB = time.Date(y-minAge, m, d, 0, 0, 0, 0, time.UTC)
	minDOB = time.Date(y-maxAge-1, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return minDOB, maxDOB, nil
}

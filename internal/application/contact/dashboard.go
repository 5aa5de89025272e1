package contact

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

const unspecifiedUserType = "unspecified"

type UserTypeCount struct {
	UserType string `json:"user_type"`
	Count    int    `json:"count"`
}

type DashboardOutput struct {
	Total       int             `json:"total"`
	ByUserType  []UserTypeCount `json:"by_user_type"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
}

type Dashboard interface {
	Execute(ctx context.Context, clientID string) (DashboardOutput, error)
}

type dashboard struct {
	repo domain.RecordRepository
}

func NewDashboard(repo domain.RecordRepository) Dashboard {
	return &dashboard{repo: repo}
}

func (uc *dashboard) Execute(ctx context.Context, clientID string) (DashboardOutput, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return DashboardOutput{}, ErrMissingClientID
	}

	records, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return DashboardOutput{}, fmt.Errorf("%w: %v", ErrDashboard, err)
	}

	counts := make(map[string]int)
	var last time.Time
	for _, rec := range records {
		userType := strings.TrimSpace(rec.UserType)
		if userType == "" {
			userType = unspecifiedUserType
		}
		counts[userType]++
		if rec.UpdatedAt.After(last) {
			last = rec.UpdatedAt
		}
	}

	breakdown := make([]UserTypeCount, 0, len(counts))
	for userType, n := range counts {
		breakdown = append(breakdown, UserTypeCount{UserType: userType, Count: n})
	}
	slices.SortFunc(breakdown, func(a, b UserTypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.UserType, b.UserType)
	})

	out := DashboardOutput{Total: len(records), ByUserType: breakdown}
	if !last.IsZero() {
		out.LastUpdated = &last
	}
	return out, nil
}

package contact

import (
	"context"
	"fmt"
	"slices"
	"strings"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

type ListRecordsInput struct {
	ClientID      string
	Search        string
	SearchColumns []string
	UserType      string
	From          string
	To            string
	ColumnFilters map[string][]string
	SortColumn    string
	SortDesc      bool
	Page          int
	PageSize      int
}

type ListRecordsOutput struct {
	Rows       []domain.Record `json:"rows"`
	Columns    []string        `json:"columns"`
	UserTypes  []string        `json:"user_types"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Window     []int           `json:"window"`
}

type ListRecords interface {
	Execute(ctx context.Context, in ListRecordsInput) (ListRecordsOutput, error)
}

type listRecords struct {
	repo domain.RecordRepository
}

func NewListRecords(repo domain.RecordRepository) ListRecords {
	return &listRecords{repo: repo}
}

func (uc *listRecords) Execute(ctx context.Context, in ListRecordsInput) (ListRecordsOutput, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return ListRecordsOutput{}, ErrMissingClientID
	}

	searchColumns := in.SearchColumns
	if len(searchColumns) == 0 {
		searchColumns = domain.Columns()
	}
	for _, col := range searchColumns {
		if !knownColumn(col) {
			return ListRecordsOutput{}, fmt.Errorf("%w: unknown search column %q", ErrInvalidQuery, col)
		}
	}
	for col := range in.ColumnFilters {
		if !knownColumn(col) {
			return ListRecordsOutput{}, fmt.Errorf("%w: unknown filter column %q", ErrInvalidQuery, col)
		}
	}
	if in.SortColumn != "" && !knownColumn(in.SortColumn) {
		return ListRecordsOutput{}, fmt.Errorf("%w: unknown sort column %q", ErrInvalidQuery, in.SortColumn)
	}

	dates, err := parseDateRange(in.From, in.To)
	if err != nil {
		return ListRecordsOutput{}, err
	}

	records, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return ListRecordsOutput{}, fmt.Errorf("%w: %v", ErrListRecords, err)
	}

	needle := strings.ToLower(strings.TrimSpace(in.Search))
	userType := strings.TrimSpace(in.UserType)

	userTypes := make([]string, 0)
	matched := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if rec.UserType != "" && !slices.Contains(userTypes, rec.UserType) {
			userTypes = append(userTypes, rec.UserType)
		}
		if userType != "" && rec.UserType != userType {
			continue
		}
		if !dates.contains(rec.CreatedAt) {
			continue
		}
		if !matchesColumnFilters(rec, in.ColumnFilters) {
			continue
		}
		if !matchesSearch(rec, needle, searchColumns) {
			continue
		}
		matched = append(matched, rec)
	}
	slices.Sort(userTypes)

	sortRecords(matched, in.SortColumn, in.SortDesc)

	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(matched)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	page := min(max(in.Page, 1), totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	return ListRecordsOutput{
		Rows:       matched[start:end],
		Columns:    domain.Columns(),
		UserTypes:  userTypes,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Window:     pageWindow(page, totalPages),
	}, nil
}

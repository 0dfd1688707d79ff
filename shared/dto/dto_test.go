package dto_test

import (
	"checkin/shared/constant"
	"checkin/shared/dto"
	"checkin/shared/model"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "full_name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "full_name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range tt.queryParams {
				values.Set(k, v)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			q := dto.QueryParams{}
			q.FromRequest(req, tt.defaultRequest)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArg    any
	}{
		{
			name: "equality on hotel id",
			filter: dto.Filter{
				Field:    "hotel_id",
				Operator: dto.FilterOperatorEq,
				Value:    "abc",
				Table:    "guests",
			},
			wantClause: "guests.hotel_id = :hotel_id",
			wantArg:    "abc",
		},
		{
			name: "strict less for half-open overlap",
			filter: dto.Filter{
				ArgName:  "stay_to",
				Field:    "stay_from",
				Operator: dto.FilterOperatorLess,
				Value:    "2024-06-07",
				Table:    "guests",
			},
			wantClause: "guests.stay_from < :stay_to",
			wantArg:    "2024-06-07",
		},
		{
			name: "strict greater for half-open overlap",
			filter: dto.Filter{
				ArgName:  "stay_from",
				Field:    "stay_to",
				Operator: dto.FilterOperatorGreater,
				Value:    "2024-06-03",
				Table:    "guests",
			},
			wantClause: "guests.stay_to > :stay_from",
			wantArg:    "2024-06-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if strings.TrimSpace(clause) != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, clause)
			}

			argName := tt.filter.ArgName
			if argName == "" {
				argName = tt.filter.Field
			}

			if args[argName] != tt.wantArg {
				t.Errorf("expected arg %v, got %v", tt.wantArg, args[argName])
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "hotel_id", Operator: dto.FilterOperatorEq, Value: "h1"},
			dto.Filter{Field: "stay_from", Operator: dto.FilterOperatorLess, Value: "2024-06-07", ArgName: "to"},
		},
	}

	clause, args := group.GetWhereClause()

	if !strings.Contains(clause, " AND ") {
		t.Errorf("expected AND-joined clause, got %q", clause)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

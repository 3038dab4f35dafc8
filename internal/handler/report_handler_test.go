package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"miniinventory/internal/errors"
	"miniinventory/internal/export"
	"miniinventory/internal/service"
)

func reportRoutes(svc *MockInventoryService) *echo.Echo {
	e := newTestEcho()
	h := NewReportHandler(svc)
	e.GET("/dashboard", h.GetDashboard)
	e.GET("/export/:format", h.Export)
	return e
}

func TestGetDashboard(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("Dashboard", mock.Anything).Return(&service.Dashboard{
		TotalProducts: 2,
		TotalQuantity: 15,
		TotalValue:    decimal.RequireFromString("40"),
		TopCategories: []service.CategoryCount{{Category: "Tools", Count: 2}},
	}, nil)

	rec := serve(reportRoutes(svc), http.MethodGet, "/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total_products": 2,
		"total_quantity": 15,
		"total_value": "40",
		"top_categories": [{"category": "Tools", "count": 2}]
	}`, rec.Body.String())
}

func TestExport(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		setupMock    func(*MockInventoryService)
		expectedCode int
		expectedType string
		expectedErr  string
	}{
		{
			name:   "csv with filter",
			target: "/export/csv?q=Tools",
			setupMock: func(m *MockInventoryService) {
				m.On("Export", mock.Anything, mock.Anything, export.FormatCSV, "Tools").
					Run(func(args mock.Arguments) {
						w := args.Get(1).(io.Writer)
						fmt.Fprintln(w, strings.Join(export.Header, ","))
					}).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedType: "text/csv; charset=utf-8",
		},
		{
			name:   "xlsx disabled",
			target: "/export/xlsx",
			setupMock: func(m *MockInventoryService) {
				m.On("Export", mock.Anything, mock.Anything, export.FormatXLSX, "").
					Return(errors.ErrExportDisabled)
			},
			expectedCode: http.StatusNotImplemented,
			expectedErr:  "EXPORT_DISABLED",
		},
		{
			name:   "nothing to export",
			target: "/export/csv",
			setupMock: func(m *MockInventoryService) {
				m.On("Export", mock.Anything, mock.Anything, export.FormatCSV, "").
					Return(errors.ErrNothingToExport)
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  "NOTHING_TO_EXPORT",
		},
		{
			name:         "unknown format",
			target:       "/export/pdf",
			setupMock:    func(m *MockInventoryService) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInventoryService)
			tt.setupMock(svc)

			rec := serve(reportRoutes(svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeError(t, rec).Code)
			} else {
				assert.Equal(t, tt.expectedType, rec.Header().Get(echo.HeaderContentType))
				assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "inventory_export_")
				assert.Equal(t, "ID,Name,Category,Quantity,Price,Added On\n", rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

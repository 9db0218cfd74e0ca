package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hotwellkz/app59/internal/controllers/v1"
	"github.com/hotwellkz/app59/internal/models"
	"github.com/hotwellkz/app59/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestHistoryOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Client with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Client exists", createTestClient(suite.T(), v1.ClientEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/clients/%s/history", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
			}
		})
	}
}

// TestHistoryGet verifies that the history endpoint resolves the identity
// category and returns its transactions, newest first.
func (suite *TestSuiteStandard) TestHistoryGet() {
	client := createTestClient(suite.T(), v1.ClientEditable{FirstName: "Ivan", LastName: "Petrov"})
	category := createTestCategory(suite.T(), v1.CategoryEditable{
		ClientID: client.Data.ID,
		Row:      models.CategoryRowIdentity,
		Icon:     "Banknote",
		Color:    "#FF0000",
	})

	older := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: &category.Data.ID,
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(100000),
	})
	newer := createTestTransaction(suite.T(), v1.TransactionEditable{
		CategoryID: &category.Data.ID,
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(225000),
	})

	r := test.Request(suite.T(), http.MethodGet, client.Data.Links.History, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HistoryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), category.Data.ID, response.Data.Category.ID)
	assert.Equal(suite.T(), "Banknote", response.Data.Category.Icon)
	assert.Equal(suite.T(), "#FF0000", response.Data.Category.Color)

	require.Len(suite.T(), response.Data.Transactions, 2)
	assert.Equal(suite.T(), newer.Data.ID, response.Data.Transactions[0].ID)
	assert.Equal(suite.T(), older.Data.ID, response.Data.Transactions[1].ID)
}

// TestHistoryDefaults verifies that icon and color fall back to display
// defaults when the category does not have them set.
func (suite *TestSuiteStandard) TestHistoryDefaults() {
	client := createTestClient(suite.T(), v1.ClientEditable{FirstName: "Ivan", LastName: "Petrov"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{
		ClientID: client.Data.ID,
		Row:      models.CategoryRowIdentity,
	})

	r := test.Request(suite.T(), http.MethodGet, client.Data.Links.History, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.HistoryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "Home", response.Data.Category.Icon)
	assert.Equal(suite.T(), "#3B82F6", response.Data.Category.Color)
	assert.Equal(suite.T(), "Petrov Ivan", response.Data.Category.Title)
	assert.NotNil(suite.T(), response.Data.Transactions)
	assert.Len(suite.T(), response.Data.Transactions, 0)
}

// TestHistoryUnavailable verifies the 404 for clients without an identity
// category. A client with only project categories has no history either.
func (suite *TestSuiteStandard) TestHistoryUnavailable() {
	client := createTestClient(suite.T(), v1.ClientEditable{FirstName: "Ivan", LastName: "Petrov"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{
		ClientID: client.Data.ID,
		Row:      models.CategoryRowProject,
	})

	r := test.Request(suite.T(), http.MethodGet, client.Data.Links.History, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.HistoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrHistoryUnavailable.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestHistoryFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Non-existing Client", uuid.New().String(), http.StatusNotFound},
		{"Invalid UUID", "notaUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/clients/%s/history", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hotwellkz/app59/internal/controllers/v1"
	"github.com/hotwellkz/app59/internal/models"
	"github.com/hotwellkz/app59/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestVisibilityOptions() {
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
			path := fmt.Sprintf("http://example.com/v1/clients/%s/visibility", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, POST", r.Header().Get("allow"))
			}
		})
	}
}

// TestVisibilityToggle verifies that the toggle flips the client flag and
// cascades it to all categories of the client.
func (suite *TestSuiteStandard) TestVisibilityToggle() {
	client := createTestClient(suite.T(), v1.ClientEditable{FirstName: "Ivan", LastName: "Petrov", Visible: true})
	identity := createTestCategory(suite.T(), v1.CategoryEditable{
		ClientID: client.Data.ID,
		Row:      models.CategoryRowIdentity,
		Visible:  true,
	})
	project := createTestCategory(suite.T(), v1.CategoryEditable{
		ClientID: client.Data.ID,
		Row:      models.CategoryRowProject,
		Visible:  true,
	})

	r := test.Request(suite.T(), http.MethodPost, client.Data.Links.Visibility, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ClientResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Visible)

	for _, id := range []uuid.UUID{identity.Data.ID, project.Data.ID} {
		var category models.Category
		require.Nil(suite.T(), models.DB.First(&category, id).Error)
		assert.False(suite.T(), category.Visible, "Category %s was not hidden together with the client", id)
	}

	// Toggling a second time restores the initial state
	r = test.Request(suite.T(), http.MethodPost, client.Data.Links.Visibility, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Visible)

	var category models.Category
	require.Nil(suite.T(), models.DB.First(&category, identity.Data.ID).Error)
	assert.True(suite.T(), category.Visible)
}

func (suite *TestSuiteStandard) TestVisibilityToggleFails() {
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
			r := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/clients/%s/visibility", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

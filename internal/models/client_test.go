package models_test

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hotwellkz/app59/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestClientTrimWhitespace() {
	firstName := "  Ivan "
	lastName := "\tPetrov   "
	address := " Some street 5 "

	client := suite.createTestClient(models.Client{
		FirstName:           firstName,
		LastName:            lastName,
		ConstructionAddress: address,
	})

	assert.Equal(suite.T(), strings.TrimSpace(firstName), client.FirstName)
	assert.Equal(suite.T(), strings.TrimSpace(lastName), client.LastName)
	assert.Equal(suite.T(), strings.TrimSpace(address), client.ConstructionAddress)
}

func (suite *TestSuiteStandard) TestClientStatusDefault() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	assert.Equal(suite.T(), models.ClientStatusBuilding, client.Status)
}

func (suite *TestSuiteStandard) TestClientStatusInvalid() {
	client := models.Client{
		FirstName:    "Ivan",
		LastName:     "Petrov",
		ClientNumber: "2024-001",
		Status:       "finished",
	}

	err := models.DB.Create(&client).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientStatusInvalid)
}

func (suite *TestSuiteStandard) TestClientStatusInvalidUpdate() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	err := models.DB.Model(&client).Select("", "Status").Updates(models.Client{Status: "demolished"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientStatusInvalid)

	var reloaded models.Client
	suite.Require().Nil(models.DB.First(&reloaded, client.ID).Error)
	assert.Equal(suite.T(), models.ClientStatusBuilding, reloaded.Status)

	err = models.DB.Model(&client).Select("", "Status").Updates(models.Client{Status: models.ClientStatusDeposit}).Error
	suite.Require().Nil(err)

	suite.Require().Nil(models.DB.First(&reloaded, client.ID).Error)
	assert.Equal(suite.T(), models.ClientStatusDeposit, reloaded.Status)
}

func (suite *TestSuiteStandard) TestClientNumberUnique() {
	_ = suite.createTestClient(models.Client{ClientNumber: "2024-001"})

	duplicate := models.Client{ClientNumber: "2024-001"}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientNumberNotUnique)
}

func (suite *TestSuiteStandard) TestClientFullName() {
	tests := []struct {
		firstName string
		lastName  string
		fullName  string
	}{
		{"Ivan", "Petrov", "Petrov Ivan"},
		{"", "Petrov", "Petrov"},
		{"Ivan", "", "Ivan"},
		{"", "", ""},
	}

	for _, tt := range tests {
		client := models.Client{FirstName: tt.firstName, LastName: tt.lastName}
		assert.Equal(suite.T(), tt.fullName, client.FullName())
	}
}

func (suite *TestSuiteStandard) TestClientToggleVisibility() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov", Visible: true})

	identity := suite.createTestCategory(models.Category{
		ClientID: client.ID,
		Row:      models.CategoryRowIdentity,
		Visible:  true,
	})
	project := suite.createTestCategory(models.Category{
		ClientID: client.ID,
		Row:      models.CategoryRowProject,
		Visible:  true,
	})

	err := client.ToggleVisibility(context.Background(), models.DB)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), client.Visible)

	for _, id := range []models.Category{identity, project} {
		var category models.Category
		require.Nil(suite.T(), models.DB.First(&category, id.ID).Error)
		assert.False(suite.T(), category.Visible, "Category %s was not hidden together with the client", category.ID)
	}

	// Toggling again restores the initial state
	err = client.ToggleVisibility(context.Background(), models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), client.Visible)

	var category models.Category
	require.Nil(suite.T(), models.DB.First(&category, identity.ID).Error)
	assert.True(suite.T(), category.Visible)
}

func (suite *TestSuiteStandard) TestClientToggleVisibilityNoCategories() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov", Visible: true})

	err := client.ToggleVisibility(context.Background(), models.DB)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), client.Visible)

	var reloaded models.Client
	require.Nil(suite.T(), models.DB.First(&reloaded, client.ID).Error)
	assert.False(suite.T(), reloaded.Visible)
}

func (suite *TestSuiteStandard) TestClientToggleVisibilityOtherClientsUntouched() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov", Visible: true})
	other := suite.createTestClient(models.Client{FirstName: "Anna", LastName: "Sidorova", Visible: true})
	otherCategory := suite.createTestCategory(models.Category{
		ClientID: other.ID,
		Row:      models.CategoryRowIdentity,
		Visible:  true,
	})

	err := client.ToggleVisibility(context.Background(), models.DB)
	require.Nil(suite.T(), err)

	var category models.Category
	require.Nil(suite.T(), models.DB.First(&category, otherCategory.ID).Error)
	assert.True(suite.T(), category.Visible, "Category of an unrelated client was hidden")
}

func (suite *TestSuiteStandard) TestClientToggleVisibilityDBFail() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	suite.CloseDB()

	err := client.ToggleVisibility(context.Background(), models.DB)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestClientIdentityCategory() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	_, err := client.IdentityCategory(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrHistoryUnavailable)

	identity := suite.createTestCategory(models.Category{
		ClientID: client.ID,
		Row:      models.CategoryRowIdentity,
	})

	category, err := client.IdentityCategory(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), identity.ID, category.ID)
}

func (suite *TestSuiteStandard) TestClientDeleteWithHistory() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	category := suite.createTestCategory(models.Category{ClientID: client.ID})
	transaction := suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(150000),
	})

	err := client.DeleteWithHistory(models.DB)
	require.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Transaction was not deleted together with the client")

	models.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Category was not deleted together with the client")

	models.DB.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Client was not deleted")
}

func (suite *TestSuiteStandard) TestClientDeleteIconOnly() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	category := suite.createTestCategory(models.Category{ClientID: client.ID})
	transaction := suite.createTestTransaction(models.Transaction{
		CategoryID: &category.ID,
		Amount:     decimal.NewFromFloat(150000),
	})

	err := client.DeleteIconOnly(models.DB)
	require.Nil(suite.T(), err)

	// The transaction survives with a cleared category reference
	var reloaded models.Transaction
	require.Nil(suite.T(), models.DB.First(&reloaded, transaction.ID).Error)
	assert.Nil(suite.T(), reloaded.CategoryID)

	var count int64
	models.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Category was not deleted together with the client")

	models.DB.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Client was not deleted")
}

func (suite *TestSuiteStandard) TestClientExport() {
	t := suite.T()

	_ = suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	_ = suite.createTestClient(models.Client{FirstName: "Anna", LastName: "Sidorova"})

	raw, err := models.Client{}.Export()
	require.Nil(t, err)

	var clients []models.Client
	require.Nil(t, json.Unmarshal(raw, &clients))
	assert.Len(t, clients, 2)
}

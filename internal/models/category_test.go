package models_test

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hotwellkz/app59/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	title := "\t Plot 7   "
	icon := " Home "

	category := suite.createTestCategory(models.Category{
		ClientID: client.ID,
		Title:    title,
		Icon:     icon,
	})

	assert.Equal(suite.T(), "Plot 7", category.Title)
	assert.Equal(suite.T(), "Home", category.Icon)
}

func (suite *TestSuiteStandard) TestCategoryTitleDerived() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	category := suite.createTestCategory(models.Category{ClientID: client.ID})
	assert.Equal(suite.T(), "Petrov Ivan", category.Title)
}

func (suite *TestSuiteStandard) TestCategoryRowInvalid() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})

	category := models.Category{
		ClientID: client.ID,
		Row:      2,
	}

	err := models.DB.Create(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryRowInvalid)
}

func (suite *TestSuiteStandard) TestCategoryIdentityUnique() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	_ = suite.createTestCategory(models.Category{ClientID: client.ID, Row: models.CategoryRowIdentity})

	duplicate := models.Category{ClientID: client.ID, Row: models.CategoryRowIdentity}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrIdentityCategoryNotUnique)

	// Multiple project categories are allowed
	_ = suite.createTestCategory(models.Category{ClientID: client.ID, Row: models.CategoryRowProject})
	_ = suite.createTestCategory(models.Category{ClientID: client.ID, Row: models.CategoryRowProject})
}

func (suite *TestSuiteStandard) TestCategoryClientMustExist() {
	category := models.Category{
		ClientID: uuid.New(),
		Row:      models.CategoryRowIdentity,
		Title:    "Orphan",
	}

	err := models.DB.Create(&category).Error
	require.NotNil(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "there is no client matching your query")
}

func (suite *TestSuiteStandard) TestCategoryTransactions() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	category := suite.createTestCategory(models.Category{ClientID: client.ID})

	_ = suite.createTestTransaction(models.Transaction{CategoryID: &category.ID, Amount: decimal.NewFromFloat(100)})
	_ = suite.createTestTransaction(models.Transaction{CategoryID: &category.ID, Amount: decimal.NewFromFloat(200)})

	transactions, err := category.Transactions(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), transactions, 2)
}

func (suite *TestSuiteStandard) TestCategoryTransactionsDBFail() {
	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	category := suite.createTestCategory(models.Category{ClientID: client.ID})

	suite.CloseDB()

	_, err := category.Transactions(models.DB)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestCategoryExport() {
	t := suite.T()

	client := suite.createTestClient(models.Client{FirstName: "Ivan", LastName: "Petrov"})
	_ = suite.createTestCategory(models.Category{ClientID: client.ID, Row: models.CategoryRowIdentity})
	_ = suite.createTestCategory(models.Category{ClientID: client.ID, Row: models.CategoryRowProject})

	raw, err := models.Category{}.Export()
	require.Nil(t, err)

	var categories []models.Category
	require.Nil(t, json.Unmarshal(raw, &categories))
	assert.Len(t, categories, 2)
}

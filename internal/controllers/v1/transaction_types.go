package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotwellkz/app59/internal/models"
	app_uuid "github.com/hotwellkz/app59/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	CategoryID *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the category, null for orphaned history entries
	Date       time.Time       `json:"date" example:"2024-03-17T00:00:00Z"`                       // Date of the transaction
	Amount     decimal.Decimal `json:"amount" example:"250000"`                                   // Amount of the transaction
	Note       string          `json:"note" example:"Foundation works" default:""`                // Note about the transaction
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		CategoryID: editable.CategoryID,
		Date:       editable.Date,
		Amount:     editable.Amount,
		Note:       editable.Note,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			CategoryID: model.CategoryID,
			Date:       model.Date,
			Amount:     model.Amount,
			Note:       model.Note,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	CategoryID app_uuid.UUID `form:"category"`                                           // By ID of the category
	Note       string        `form:"note" filterField:"false"`                           // By note
	Since      time.Time     `form:"since" filterField:"false" time_format:"2006-01-02"` // Only transactions on or after this date
	Until      time.Time     `form:"until" filterField:"false" time_format:"2006-01-02"` // Only transactions on or before this date
	Offset     uint          `form:"offset" filterField:"false"`                         // The offset of the first Transaction returned. Defaults to 0.
	Limit      int           `form:"limit" filterField:"false"`                          // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	transaction := models.Transaction{}

	if f.CategoryID.UUID != uuid.Nil {
		id := f.CategoryID.UUID
		transaction.CategoryID = &id
	}

	return transaction
}

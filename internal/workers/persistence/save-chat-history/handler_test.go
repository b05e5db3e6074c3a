package savechathistory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"enhancement-workers/internal/common/logger"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestInput() *Input {
	return &Input{
		ConversationID: "conv-001",
		UserID:         "user-42",
		Role:           "assistant",
		Content:        "Your order shipped yesterday and should arrive within 3-5 business days.",
		Scenario:       "order_inquiry",
		Confidence:     0.82,
		Escalated:      false,
		Enhancement: map[string]interface{}{
			"confidenceLevel": "medium",
			"sourceCount":     3,
		},
	}
}

func TestExecute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO chat_messages`).
		WithArgs(
			sqlmock.AnyArg(), // generated message ID
			"conv-001",
			"user-42",
			"assistant",
			"Your order shipped yesterday and should arrive within 3-5 business days.",
			"order_inquiry",
			0.82,
			false,
			sqlmock.AnyArg(), // enhancement JSON
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.MessageID)
	assert.NotEmpty(t, output.SavedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_ExplicitMessageIDChecksDuplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("conv-001", "msg-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO chat_messages`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	input := createTestInput()
	input.MessageID = "msg-123"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "msg-123", output.MessageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("conv-001", "msg-123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	input := createTestInput()
	input.MessageID = "msg-123"

	_, err = handler.Execute(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO chat_messages`).
		WillReturnError(assert.AnError)

	handler := NewHandler(createTestConfig(), db, createTestLogger(t))

	_, err = handler.Execute(context.Background(), createTestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHistorySaveFailed)
}

func TestExecute_Validation(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing conversation", func(in *Input) { in.ConversationID = " " }},
		{"bad role", func(in *Input) { in.Role = "system" }},
		{"empty content", func(in *Input) { in.Content = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			_, err := handler.Execute(context.Background(), input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMessage)
		})
	}

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

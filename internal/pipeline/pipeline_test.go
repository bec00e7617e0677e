package pipeline

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/llm"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
)

type stubClient struct {
	payload string
	err     error
	gotReq  llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.gotReq = req
	return s.payload, s.err
}

func (s *stubClient) ModelName() string { return "stub-model" }

func TestIngestSpreadsheetEndToEnd(t *testing.T) {
	stub := &stubClient{payload: `{"expenses":[
		{"amount":42.10,"currency":"USD","occurredOn":"2024-01-05","merchant":"STARBUCKS","lineIndex":1},
		{"amount":-15.00,"currency":"USD","occurredOn":"2024-01-06","merchant":"ACME","lineIndex":2}
	]}`}
	p := New(stub, &logging.MockLogger{})

	result, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypeSpreadsheet,
		Rows: []string{
			"2024-01-05, 42.10 USD, STARBUCKS",
			"2024-01-06, -15.00 USD, REFUND ACME",
		},
	}, []string{"Coffee", "Refunds"})
	require.NoError(t, err)
	require.Len(t, result.Expenses, 2)

	assert.True(t, result.Expenses[0].Amount.Equal(decimal.RequireFromString("42.10")))
	assert.Equal(t, 1, result.Expenses[0].LineIndex)
	assert.True(t, result.Expenses[1].Amount.Equal(decimal.RequireFromString("-15.00")))
	assert.Equal(t, 2, result.Expenses[1].LineIndex)

	assert.Contains(t, stub.gotReq.User, "1: 2024-01-05, 42.10 USD, STARBUCKS")
	assert.Contains(t, stub.gotReq.User, "Coffee")
}

func TestIngestSurfacesUpstreamErrorWithoutPartialResult(t *testing.T) {
	stub := &stubClient{err: &ingesterror.UpstreamError{Status: 500, Body: "internal"}}
	p := New(stub, &logging.MockLogger{})

	result, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypeSpreadsheet,
		Rows:        []string{"2024-01-05, 42.10 USD, STARBUCKS"},
	}, nil)

	status, ok := ingesterror.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, 500, status)
	assert.Empty(t, result.Expenses)
}

func TestIngestDropsUnanchoredAndBadDateRows(t *testing.T) {
	stub := &stubClient{payload: `{"expenses":[
		{"amount":1,"currency":"USD","occurredOn":"2024-01-01","lineIndex":1},
		{"amount":2,"currency":"USD","occurredOn":"2024-01-02","lineIndex":9},
		{"amount":3,"currency":"USD","occurredOn":"January 3rd","lineIndex":2}
	]}`}
	p := New(stub, &logging.MockLogger{})

	result, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypeSpreadsheet,
		Rows:        []string{"row one", "row two"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Expenses, 1)
	assert.Equal(t, 1, result.Expenses[0].LineIndex)
}

func TestIngestPDFStripsLineAnchors(t *testing.T) {
	stub := &stubClient{payload: `{"expenses":[
		{"amount":1,"currency":"CHF","occurredOn":"2024-01-01","lineIndex":4}
	]}`}
	p := New(stub, &logging.MockLogger{})

	result, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypePDF,
		Text:        "Statement text with a 1.00 CHF charge on 2024-01-01",
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Expenses, 1)
	assert.Zero(t, result.Expenses[0].LineIndex)
}

func TestIngestRejectsInconsistentInput(t *testing.T) {
	p := New(&stubClient{}, &logging.MockLogger{})

	_, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypeSpreadsheet,
		Text:        "should have been rows",
	}, nil)
	assert.Error(t, err)
}

func TestIngestEmptyStatement(t *testing.T) {
	stub := &stubClient{payload: `{"expenses":[]}`}
	p := New(stub, &logging.MockLogger{})

	result, err := p.Ingest(context.Background(), models.RawStatementInput{
		ContentType: models.ContentTypeSpreadsheet,
		Rows:        []string{},
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Expenses)
}

package sheets

import (
	"context"
	"sync"

	"github.com/ledgerline/soa/internal/service"
)

// MockStore is a mock implementation of service.StatementStore for testing.
type MockStore struct {
	CreateFunc func(ctx context.Context, rows [][]any) (*service.WriteResult, error)
	AppendFunc func(ctx context.Context, worksheetName string, rows [][]any) (*service.WriteResult, error)
	ReadFunc   func(ctx context.Context, worksheetName string, maxRows int) (*service.WorksheetData, error)
	ListFunc   func(ctx context.Context) ([]string, error)
	CheckFunc  func(ctx context.Context) (*service.AccessInfo, error)

	LastCreateRows  [][]any
	CreateCallCount int
	AppendCallCount int
	mu              sync.Mutex
}

var _ service.StatementStore = (*MockStore)(nil)

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// CreateStatement implements service.StatementStore.
func (m *MockStore) CreateStatement(ctx context.Context, rows [][]any) (*service.WriteResult, error) {
	m.mu.Lock()
	m.CreateCallCount++
	m.LastCreateRows = rows
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rows)
	}
	return &service.WriteResult{
		WorksheetName: "Statement_20240101_000000",
		RowsWritten:   len(rows),
	}, nil
}

// AppendStatement implements service.StatementStore.
func (m *MockStore) AppendStatement(ctx context.Context, worksheetName string, rows [][]any) (*service.WriteResult, error) {
	m.mu.Lock()
	m.AppendCallCount++
	m.mu.Unlock()

	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, worksheetName, rows)
	}
	return &service.WriteResult{
		WorksheetName: worksheetName,
		RowsWritten:   len(rows),
	}, nil
}

// ReadStatement implements service.StatementStore.
func (m *MockStore) ReadStatement(ctx context.Context, worksheetName string, maxRows int) (*service.WorksheetData, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, worksheetName, maxRows)
	}
	return &service.WorksheetData{Worksheet: worksheetName}, nil
}

// ListStatements implements service.StatementStore.
func (m *MockStore) ListStatements(ctx context.Context) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// CheckAccess implements service.StatementStore.
func (m *MockStore) CheckAccess(ctx context.Context) (*service.AccessInfo, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	return &service.AccessInfo{}, nil
}

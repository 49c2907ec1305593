// Package testutil provides shared fixtures and database helpers for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/storage"
)

// TestDB is a migrated in-memory database seeded for one test.
type TestDB struct {
	Storage    *storage.SQLiteStorage
	t          *testing.T
	WorkOrders []model.WorkOrder
}

// SetupTestDB creates a new in-memory test database seeded with orders.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewWorkOrderBuilder().WithNumber("12345").Build(),
//	)
func SetupTestDB(t *testing.T, orders ...model.WorkOrder) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range orders {
		if err := store.SaveWorkOrder(ctx, &orders[i]); err != nil {
			t.Fatalf("failed to seed work order %q: %v", orders[i].ID, err)
		}
	}

	return &TestDB{
		Storage:    store,
		WorkOrders: orders,
		t:          t,
	}
}

// MustGetWorkOrder returns the stored work order or fails the test.
func (db *TestDB) MustGetWorkOrder(id string) *model.WorkOrder {
	db.t.Helper()
	order, err := db.Storage.GetWorkOrder(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get work order %q: %v", id, err)
	}
	return order
}

// MustGetCategorization returns the stored categorization or fails the test.
func (db *TestDB) MustGetCategorization(workOrderID string) *model.Categorization {
	db.t.Helper()
	c, err := db.Storage.GetCategorization(context.Background(), workOrderID)
	if err != nil {
		db.t.Fatalf("failed to get categorization for %q: %v", workOrderID, err)
	}
	return c
}

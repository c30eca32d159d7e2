package testutil

import (
	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// UsersTable creates a users table with sample data for testing.
// Values are strings, as if read from a file.
func UsersTable() *recordset.Table {
	return recordset.New([]*data.Row{
		data.RowOf("id", "1", "username", "alice", "email", "alice@example.com"),
		data.RowOf("id", "2", "username", "bob", "email", "bob@example.com"),
		data.RowOf("id", "3", "username", "charlie", "email", "charlie@example.com"),
	}, recordset.WithName("users"))
}

// OrdersTable creates an orders table with sample data for testing
func OrdersTable() *recordset.Table {
	return recordset.New([]*data.Row{
		data.RowOf("id", "1", "user_id", "1", "product", "Laptop", "amount", "999.99"),
		data.RowOf("id", "2", "user_id", "1", "product", "Mouse", "amount", "25.50"),
		data.RowOf("id", "3", "user_id", "2", "product", "Keyboard", "amount", "75.00"),
		// Note: user_id 3 (charlie) has no orders
	}, recordset.WithName("orders"))
}

// UsageTable creates a ward usage table with repeated keys, for grouping
func UsageTable() *recordset.Table {
	return recordset.New([]*data.Row{
		data.RowOf("date", "2024-01", "ward", "A", "code", "D1", "qty", "2"),
		data.RowOf("date", "2024-01", "ward", "B", "code", "D2", "qty", "5"),
		data.RowOf("date", "2024-01", "ward", "A", "code", "D2", "qty", "1"),
		data.RowOf("date", "2024-02", "ward", "A", "code", "D1", "qty", "4"),
		data.RowOf("date", "2024-02", "ward", "B", "code", "D1", "qty", "3"),
	}, recordset.WithName("usage"))
}

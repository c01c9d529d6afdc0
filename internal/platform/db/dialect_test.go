package db

import "testing"

func TestDialectRebind(t *testing.T) {
	q := "UPDATE zones SET worker = ? WHERE name = ?;"

	if got := SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}

	want := "UPDATE zones SET worker = $1 WHERE name = $2;"
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}

func TestDialectLockClause(t *testing.T) {
	if SQLite.LockClause() != "" {
		t.Fatal("sqlite should not lock rows")
	}
	if Postgres.LockClause() != " FOR UPDATE" {
		t.Fatalf("postgres lock clause = %q", Postgres.LockClause())
	}
}

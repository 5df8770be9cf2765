package store

import "context"

// BumpSchemaVersionForTest simulates a database written by another version.
func (s *Store) BumpSchemaVersionForTest(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "UPDATE schema_version SET version = version + 1")
	return err
}

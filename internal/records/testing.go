package records

import "context"

// Seed appends users to the store's collection. It is a helper for tests and
// local fixtures; production records are created through registration.
func Seed(ctx context.Context, s *Store, users ...UserRecord) error {
	_, err := s.Update(ctx, func(existing []UserRecord) ([]UserRecord, error) {
		for _, u := range users {
			existing = append(existing, u.Clone())
		}
		return existing, nil
	})
	return err
}

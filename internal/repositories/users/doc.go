// Package users persists wallet identities in the users table.
//
// The UNIQUE(email) constraint is the only duplicate check: Create relies on
// it instead of a prior lookup, so concurrent registrations of the same
// email cannot both succeed.
package users

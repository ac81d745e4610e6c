// Package services holds the wallet's session-and-access core:
//
//   - CredentialStore registers users and verifies their secrets;
//   - SessionManager keeps the authenticated principal for the process;
//   - CardService adds and lists cards and memoizes the principal card.
//
// Store failures surface as errors matching common.ErrStoreUnavailable and
// are never folded into common.ErrInvalidCredentials.
package services

package auth

import "context"

// Operator is the subject of every token. The ledger has a single operator.
const Operator = "operator"

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the passphrase check for another method
// without changing the service layer code.
type Authenticator interface {
	// Authenticate verifies the credential and returns the operator name.
	Authenticate(ctx context.Context, credential string) (string, error)
}

package auth

import (
	"github.com/demipay/demipay/pkg/utils"
)

// CredentialVerifier compares a presented password against the stored
// credential. The mock ledger stores plaintext; isolating the comparison here
// lets a real hashing scheme replace it without touching the login flow.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}

// PlaintextVerifier compares credentials byte for byte, matching the legacy
// mock's semantics. The default.
type PlaintextVerifier struct{}

// Verify reports whether the presented password equals the stored one.
func (PlaintextVerifier) Verify(stored, presented string) bool {
	return stored != "" && stored == presented
}

// BcryptVerifier treats the stored credential as a bcrypt hash.
type BcryptVerifier struct{}

// dummyHash keeps the bcrypt work uniform when no user matched, so a failed
// login costs the same whether the email or the password was wrong.
const dummyHash = "$2a$14$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Verify reports whether the presented password matches the stored hash.
func (BcryptVerifier) Verify(stored, presented string) bool {
	if stored == "" {
		_ = utils.CheckPasswordHash(presented, dummyHash)
		return false
	}
	return utils.CheckPasswordHash(presented, stored)
}

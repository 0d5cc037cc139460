package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_hasher_mock.go -package=mock

// CredentialHasher turns account passwords into self-describing digests and
// checks passwords against them. It is the only credential primitive the
// server uses; payload encryption happens on devices and is opaque here.
type CredentialHasher interface {
	// Hash returns an encoded argon2id digest with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed digest
	// is an error, a wrong password is not.
	Verify(password, encoded string) (bool, error)
}

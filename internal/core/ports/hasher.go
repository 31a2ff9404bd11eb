package ports

// PasswordHasher derives and checks salted credential digests.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(password, salt string) (string, error)
	Verify(password, digest, salt string) (bool, error)
}

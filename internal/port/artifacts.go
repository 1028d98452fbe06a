package port

import "firsgate/internal/domain"

// ArtifactStore defines the contract for local signing artifacts.
type ArtifactStore interface {
	SaveJSON(signedIRN string, inv domain.Invoice) (string, error)
	SaveEncrypted(signedIRN, encrypted string) (string, error)
	GenerateQR(signedIRN, encrypted string) (string, error)
	FindEncryptedPath(signedIRN string) (string, bool)
	FindQRPath(signedIRN string) (string, bool)
	Download(signedIRN string, t domain.DownloadType) (*domain.Download, error)
	Dirs() []string
}

// Encryptor produces the Base64 ciphertext for a signed IRN.
type Encryptor interface {
	Encrypt(irn, signedIRN string) (string, error)
	SelfTest() error
}

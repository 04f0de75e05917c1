package pak

import "os"

// Load reads the whole pak at path and decrypts it with key.
func Load(path string, key byte) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, phaseError(PhaseLoad, "", err)
	}
	Decrypt(buf, key)
	return buf, nil
}

// Decrypt XORs every byte of buf with key in place. Applying it twice
// restores the input.
func Decrypt(buf []byte, key byte) {
	for i := range buf {
		buf[i] ^= key
	}
}

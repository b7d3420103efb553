package recipe

import (
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns the hex encoded 64-bit highway hash of data.
func Fingerprint(data []byte) (string, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return "", err
	}
	if _, err = hash.Write(data); err != nil {
		return "", err
	}
	return strconv.FormatUint(hash.Sum64(), 16), nil
}

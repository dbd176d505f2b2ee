package source

import (
	"github.com/minio/highwayhash"
)

// seed keys the derivation of per-location keys.
var seed = []byte("annotator/source fingerprint key")

// locationKey derives the 32-byte highwayhash key of a location, so equal
// content stored under different URLs fingerprints differently.
func locationKey(URL string) []byte {
	key := highwayhash.Sum([]byte(URL), seed)
	return key[:]
}

// Fingerprint returns the 64-bit highwayhash of data stored at URL.
func Fingerprint(URL string, data []byte) uint64 {
	return highwayhash.Sum64(data, locationKey(URL))
}

/*
  File: hash.go
  Purpose: Content hashing for extracted CSS rules.
  Author: taikocss project
  Notes: FNV-1a keeps hashes stable across platforms and fast enough to run
         once per extracted rule. The 8-hex form is the class/animation
         name suffix and the host's cross-file de-duplication key.
*/

package utils

import (
	"fmt"
	"hash/fnv"
)

// RuleHash computes the 32-bit FNV-1a digest of the given CSS text and
// renders it as 8 lowercase, zero-padded hex characters.
func RuleHash(css string) string {
	hasher := fnv.New32a()
	hasher.Write([]byte(css))
	return fmt.Sprintf("%08x", hasher.Sum32())
}

package journal

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content hashes. The version suffix allows the
// algorithm to change without colliding with old journals.
const (
	DomainTemplate = "splice/template/v1"
	DomainOutput   = "splice/output/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + NFC(text)).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain, text string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write([]byte(norm.NFC.String(text)))
	return hex.EncodeToString(h.Sum(nil))
}

// TemplateHash returns the content hash of template text.
func TemplateHash(text string) string {
	return hashWithDomain(DomainTemplate, text)
}

// OutputHash returns the content hash of generated text.
func OutputHash(text string) string {
	return hashWithDomain(DomainOutput, text)
}

// Package mnemonic provides BIP-39 phrase generation and validation.
package mnemonic

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// entropyBits is the entropy size for 12-word mnemonics.
const entropyBits = 128

// validWordCounts are the word counts permitted by BIP-39.
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// Generate creates a fresh 12-word mnemonic phrase.
func Generate() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return phrase, nil
}

// IsValid reports whether the phrase is a well-formed BIP-39 mnemonic:
// a permitted word count and a valid wordlist/checksum combination.
func IsValid(phrase string) bool {
	words := strings.Fields(phrase)
	if !validWordCounts[len(words)] {
		return false
	}

	return bip39.IsMnemonicValid(strings.Join(words, " "))
}

// Normalize trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Validation and storage always operate on the
// normalized form.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}

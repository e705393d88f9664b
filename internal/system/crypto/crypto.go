/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const keyLength = 32 // AES-256

var hexKeyPattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

// CryptoService performs authenticated encryption of PII fields using
// AES-256-GCM. Ciphertext format is "iv:tag:ciphertext", hex encoded.
// Decryption fails loudly on tampering.
type CryptoService struct {
	key []byte
}

// NewCryptoService creates a CryptoService from a hex or base64 encoded
// 32-byte key.
func NewCryptoService(encodedKey string) (*CryptoService, error) {
	if encodedKey == "" {
		return nil, fmt.Errorf("encryption key is not configured")
	}

	var key []byte
	var err error
	if hexKeyPattern.MatchString(encodedKey) {
		key, err = hex.DecodeString(encodedKey)
	} else {
		// Base64 keys are accepted for backwards compatibility.
		key, err = base64.StdEncoding.DecodeString(encodedKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("encryption key must be %d bytes", keyLength)
	}

	return &CryptoService{key: key}, nil
}

// Encrypt encrypts the plaintext and returns "iv:tag:ciphertext" in hex.
func (s *CryptoService) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext must not be empty")
	}

	aead, err := s.newAEAD()
	if err != nil {
		return "", err
	}

	iv := make([]byte, aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	// Seal appends the authentication tag to the ciphertext.
	tagOffset := len(sealed) - aead.Overhead()
	ciphertext, tag := sealed[:tagOffset], sealed[tagOffset:]

	return fmt.Sprintf("%s:%s:%s",
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ciphertext)), nil
}

// Decrypt reverses Encrypt. Returns an error if the payload is malformed or
// fails authentication.
func (s *CryptoService) Decrypt(encrypted string) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid encrypted payload format")
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid nonce encoding: %w", err)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid tag encoding: %w", err)
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext encoding: %w", err)
	}

	aead, err := s.newAEAD()
	if err != nil {
		return "", err
	}
	if len(iv) != aead.NonceSize() {
		return "", fmt.Errorf("invalid nonce length")
	}

	plaintext, err := aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plaintext), nil
}

func (s *CryptoService) newAEAD() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/pkg/errors"
)

// AesCbcEncrypt encrypts plain with PKCS#7 padding. A nil iv draws a
// random one, which is then prefixed to the ciphertext.
func AesCbcEncrypt(key, iv, plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "[aes.NewCipher]")
	}
	var prefix bool
	if iv == nil {
		iv = make([]byte, aes.BlockSize)
		if _, err = rand.Read(iv); err != nil {
			return nil, err
		}
		prefix = true
	}
	if len(iv) != aes.BlockSize {
		return nil, errors.New("invalid iv length")
	}
	data := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	if prefix {
		return append(append(make([]byte, 0, len(iv)+len(out)), iv...), out...), nil
	}
	return out, nil
}

// AesCbcDecrypt reverses AesCbcEncrypt. A nil iv takes it from the
// first block of ciphertext.
func AesCbcDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "[aes.NewCipher]")
	}
	if iv == nil {
		if len(ciphertext) < aes.BlockSize {
			return nil, errors.New("ciphertext too short")
		}
		iv, ciphertext = ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:]
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("ciphertext is not a multiple of the block size")
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(append(make([]byte, 0, len(data)+n), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, errors.New("invalid padded data")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}

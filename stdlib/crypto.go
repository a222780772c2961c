// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"io"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// registerCrypto implements spec §4.9's crypto category with the stdlib
// crypto/* primitives per DOMAIN STACK: no pack repo reaches for
// golang.org/x/crypto for md5/sha/hmac/aes, so none is introduced here.
func registerCrypto(r map[string]interp.StdlibFunc) {
	r["md5"] = digestFn("md5", md5.New)
	r["sha1"] = digestFn("sha1", sha1.New)
	r["sha256"] = digestFn("sha256", sha256.New)
	r["sha512"] = digestFn("sha512", sha512.New)
	r["md5Base64"] = digestBase64Fn("md5Base64", md5.New)
	r["sha256Base64"] = digestBase64Fn("sha256Base64", sha256.New)
	r["hmacSha256"] = hmacFn("hmacSha256", sha256.New)
	r["hmacSha512"] = hmacFn("hmacSha512", sha512.New)
	r["encryptAESGCM"] = fnEncryptAESGCM
	r["decryptAESGCM"] = fnDecryptAESGCM
}

func digestFn(name string, newHash func() hash.Hash) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		b, err := bytesOf(name, args[0])
		if err != nil {
			return nil, err
		}
		h := newHash()
		h.Write(b)
		return udm.String(hex.EncodeToString(h.Sum(nil))), nil
	}
}

func digestBase64Fn(name string, newHash func() hash.Hash) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		b, err := bytesOf(name, args[0])
		if err != nil {
			return nil, err
		}
		h := newHash()
		h.Write(b)
		return udm.String(base64.StdEncoding.EncodeToString(h.Sum(nil))), nil
	}
}

func hmacFn(name string, newHash func() hash.Hash) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 2, 2); err != nil {
			return nil, err
		}
		key, err := bytesOf(name, args[0])
		if err != nil {
			return nil, err
		}
		msg, err := bytesOf(name, args[1])
		if err != nil {
			return nil, err
		}
		mac := hmac.New(newHash, key)
		mac.Write(msg)
		return udm.String(hex.EncodeToString(mac.Sum(nil))), nil
	}
}

func fnEncryptAESGCM(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("encryptAESGCM", args, 2, 2); err != nil {
		return nil, err
	}
	key, err := bytesOf("encryptAESGCM", args[0])
	if err != nil {
		return nil, err
	}
	plaintext, err := bytesOf("encryptAESGCM", args[1])
	if err != nil {
		return nil, err
	}
	gcm, gerr := newGCM(key)
	if gerr != nil {
		return nil, gerr
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, rerr := io.ReadFull(rand.Reader, nonce); rerr != nil {
		return nil, argError("encryptAESGCM", "cannot generate nonce: %v", rerr)
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return udm.Binary(sealed, "aes-gcm"), nil
}

func fnDecryptAESGCM(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("decryptAESGCM", args, 2, 2); err != nil {
		return nil, err
	}
	key, err := bytesOf("decryptAESGCM", args[0])
	if err != nil {
		return nil, err
	}
	ciphertext, err := bytesOf("decryptAESGCM", args[1])
	if err != nil {
		return nil, err
	}
	gcm, gerr := newGCM(key)
	if gerr != nil {
		return nil, gerr
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, argError("decryptAESGCM", "ciphertext shorter than the nonce size")
	}
	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plain, derr := gcm.Open(nil, nonce, sealed, nil)
	if derr != nil {
		return nil, argError("decryptAESGCM", "cannot decrypt: %v", derr)
	}
	return udm.Binary(plain, ""), nil
}

func newGCM(key []byte) (cipher.AEAD, *uerr.Error) {
	block, berr := aes.NewCipher(key)
	if berr != nil {
		return nil, argError("encryptAESGCM", "invalid AES key: %v", berr)
	}
	gcm, gerr := cipher.NewGCM(block)
	if gerr != nil {
		return nil, argError("encryptAESGCM", "cannot build GCM mode: %v", gerr)
	}
	return gcm, nil
}

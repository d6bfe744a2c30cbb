// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

// Package testkeys generates ephemeral test keys.
//
// Generated keys are unique per execution of the binary and are
// generated on demand.
//
// DO NOT USE THESE KEYS OUTSIDE OF UNIT TESTING.
package testkeys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
)

var (
	rsa1024Once sync.Once
	rsa2048Once sync.Once
	ecP256Once  sync.Once
)

var (
	rsa1024Private *rsa.PrivateKey
	rsa2048Private *rsa.PrivateKey
	ecP256Private  *ecdsa.PrivateKey
)

// RSA1024 returns an ephemeral RSA-1024 key which is unique per
// execution of the binary. Exists to check that keys smaller than 2048
// bits are rejected.
func RSA1024() *rsa.PrivateKey {
	rsa1024Once.Do(func() {
		//nolint:gosec // intentionally weak, for rejection tests.
		rsa1024Private, _ = rsa.GenerateKey(rand.Reader, 1024)
	})
	return rsa1024Private
}

// RSA2048 returns an ephemeral RSA-2048 key which is unique per
// execution of the binary.
func RSA2048() *rsa.PrivateKey {
	rsa2048Once.Do(func() {
		rsa2048Private, _ = rsa.GenerateKey(rand.Reader, 2048)
	})
	return rsa2048Private
}

// ECP256 returns an ephemeral ECDSA-P256 key which is unique per
// execution of the binary. GitHub apps only support RSA keys, this
// exists for rejection tests.
func ECP256() *ecdsa.PrivateKey {
	ecP256Once.Do(func() {
		ecP256Private, _ = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	})
	return ecP256Private
}

// RSA1024PEM returns [RSA1024] in PKCS #1 PEM encoding.
func RSA1024PEM() []byte {
	return rsaPEM(RSA1024())
}

// RSA2048PEM returns [RSA2048] in PKCS #1 PEM encoding, the format
// GitHub uses for downloaded app keys.
func RSA2048PEM() []byte {
	return rsaPEM(RSA2048())
}

// ECP256PEM returns [ECP256] in PKCS #8 PEM encoding.
func ECP256PEM() []byte {
	der, err := x509.MarshalPKCS8PrivateKey(ECP256())
	if err != nil {
		panic(err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func rsaPEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

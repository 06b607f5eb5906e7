// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package hash

import (
	"bytes"
	"encoding/hex"
	"golang.org/x/crypto/ripemd160"
)

const (
	RIPEMD160_HASH_SIZE_BYTES = 20
)

// CalcRipemd160Sha256 is the addressing hash used for contract state keys
// Ripemd160Sha256 is the address of a contract state key
type Ripemd160Sha256 []byte

func (x Ripemd160Sha256) String() string {
	return hex.EncodeToString(x)
}

func (x Ripemd160Sha256) Equal(y Ripemd160Sha256) bool {
	return bytes.Equal(x, y)
}

func (x Ripemd160Sha256) KeyForMap() string {
	return string(x)
}

func CalcRipemd160Sha256(data ...[]byte) Ripemd160Sha256 {
	r := ripemd160.New()
	r.Write(CalcSha256(data...))
	return r.Sum(nil)
}

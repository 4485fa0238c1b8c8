package codegen

import (
	"encoding/binary"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
)

// CodeLength 兌換碼長度
const CodeLength = 12

const keyContext = "graduation-tickets 2026 redemption code v1"

var (
	codeFormat = regexp.MustCompile(`^[A-Z0-9]{12}$`)
	// 36^12，取摘要的餘數後以 36 進位輸出
	codeSpace = new(big.Int).Exp(big.NewInt(36), big.NewInt(CodeLength), nil)

	ErrEmptySecret = errors.New("code secret must not be empty")
)

// Generator 由發券人與時間推導兌換碼
type Generator interface {
	Generate(issuerName string, timestampMillis int64) string
}

// KeyedGenerator 以 BLAKE3 keyed hash 產生兌換碼；相同輸入永遠得到相同結果
type KeyedGenerator struct {
	key [32]byte
}

func New(secret string) (*KeyedGenerator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	g := &KeyedGenerator{}
	blake3.DeriveKey(keyContext, []byte(secret), g.key[:])
	return g, nil
}

func (g *KeyedGenerator) Generate(issuerName string, timestampMillis int64) string {
	hasher, err := blake3.NewKeyed(g.key[:])
	if err != nil {
		// key 長度固定 32 bytes，不會失敗
		panic("codegen: blake3 keyed hash initialization failed: " + err.Error())
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(timestampMillis))
	hasher.Write([]byte(issuerName))
	hasher.Write([]byte{0})
	hasher.Write(ts[:])

	n := new(big.Int).SetBytes(hasher.Sum(nil))
	n.Mod(n, codeSpace)

	code := strings.ToUpper(n.Text(36))
	if len(code) < CodeLength {
		code = strings.Repeat("0", CodeLength-len(code)) + code
	}
	return code
}

// Normalize 去除前後空白並轉大寫
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidFormat 檢查是否為 12 碼 [A-Z0-9]
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// GenerateOrderReference returns e.g. "ORD-AVURYEDA-1f2e3d4c".
func (g *CodeGenerator) GenerateOrderReference(storefront string) (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	prefix := strings.ToUpper(strings.ReplaceAll(storefront, "-", ""))
	return fmt.Sprintf("ORD-%s-%s", prefix, hex.EncodeToString(randomBytes)), nil
}

func (g *CodeGenerator) GenerateSessionID() string {
	return uuid.NewString()
}

func IsSessionID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

package fallback

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCRC16_CheckValue(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), CRC16("123456789"))
}

func TestPlaceholderPayload(t *testing.T) {
	payload := PlaceholderPayload(decimal.RequireFromString("49.9"), "Loja Exemplo", "Sao Paulo")

	assert.True(t, strings.HasPrefix(payload, "000201"))
	assert.Contains(t, payload, "0014BR.GOV.BCB.PIX")
	assert.Contains(t, payload, "540549.90")
	assert.Contains(t, payload, "5802BR")
	assert.Contains(t, payload, "5912LOJA EXEMPLO")
	assert.Contains(t, payload, "6009SAO PAULO")
	assert.True(t, VerifyCRC(payload))
}

func TestPlaceholderPayload_ZeroAmountOmitsField54(t *testing.T) {
	payload := PlaceholderPayload(decimal.Zero, "", "")

	assert.NotContains(t, payload, "5303986"+"54")
	assert.Contains(t, payload, "5303986"+"5802BR")
	assert.Contains(t, payload, "5909PIX RELAY")
	assert.True(t, VerifyCRC(payload))
}

func TestPlaceholderPayload_TruncatesText(t *testing.T) {
	payload := PlaceholderPayload(decimal.NewFromInt(1), strings.Repeat("a", 40), "Sao Jose dos Campos")

	assert.Contains(t, payload, "5925"+strings.Repeat("A", 25))
	assert.Contains(t, payload, "6015SAO JOSE DOS CA")
	assert.True(t, VerifyCRC(payload))
}

func TestVerifyCRC_Tampered(t *testing.T) {
	payload := PlaceholderPayload(decimal.NewFromInt(10), "X", "Y")
	tampered := strings.Replace(payload, "540510.00", "540511.00", 1)

	assert.False(t, VerifyCRC(tampered))
	assert.False(t, VerifyCRC("short"))
}

package fallback

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMV field ids used by the BR Code placeholder.
const (
	emvPayloadFormat    = "00"
	emvMerchantAccount  = "26"
	emvMerchantCategory = "52"
	emvCurrency         = "53"
	emvAmount           = "54"
	emvCountry          = "58"
	emvMerchantName     = "59"
	emvMerchantCity     = "60"
	emvAdditionalData   = "62"
	emvCRC              = "63"

	pixGUI          = "BR.GOV.BCB.PIX"
	placeholderKey  = "00000000-0000-0000-0000-000000000000"
	maxMerchantName = 25
	maxMerchantCity = 15
)

// PlaceholderPayload builds a structurally valid static BR Code that points
// at an all-zero key. It parses and passes its checksum but cannot be paid.
func PlaceholderPayload(amount decimal.Decimal, merchant, city string) string {
	var b strings.Builder
	b.WriteString(tlv(emvPayloadFormat, "01"))
	b.WriteString(tlv(emvMerchantAccount, tlv("00", pixGUI)+tlv("01", placeholderKey)))
	b.WriteString(tlv(emvMerchantCategory, "0000"))
	b.WriteString(tlv(emvCurrency, "986"))
	if amount.IsPositive() {
		b.WriteString(tlv(emvAmount, amount.StringFixed(2)))
	}
	b.WriteString(tlv(emvCountry, "BR"))
	b.WriteString(tlv(emvMerchantName, emvText(merchant, maxMerchantName, "PIX RELAY")))
	b.WriteString(tlv(emvMerchantCity, emvText(city, maxMerchantCity, "SAO PAULO")))
	b.WriteString(tlv(emvAdditionalData, tlv("05", "***")))

	b.WriteString(emvCRC + "04")
	payload := b.String()
	return payload + fmt.Sprintf("%04X", CRC16(payload))
}

// CRC16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum of
// field 63.
func CRC16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// VerifyCRC reports whether payload ends with a correct field 63.
func VerifyCRC(payload string) bool {
	if len(payload) < 8 || payload[len(payload)-8:len(payload)-4] != emvCRC+"04" {
		return false
	}
	body := payload[:len(payload)-4]
	return fmt.Sprintf("%04X", CRC16(body)) == payload[len(payload)-4:]
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// emvText keeps printable ASCII, upper-cased and cut to max.
func emvText(s string, max int, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if r >= 0x20 && r <= 0x7E {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = fallback
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

package logger

import (
	"encoding/json"
	"net/http"
	"strings"
)

const redacted = "***"

// Header and JSON keys whose values never reach the log.
var sensitiveKeys = map[string]bool{
	"authorization":  true,
	"api-secret":     true,
	"x-withdraw-key": true,
	"client_secret":  true,
	"secret_key":     true,
	"secretkey":      true,
	"token":          true,
	"access_token":   true,
	"password":       true,
}

// Keys holding personal document numbers; masked down to their last two characters.
var documentKeys = map[string]bool{
	"document": true,
	"number":   true,
	"cpf":      true,
	"cnpj":     true,
	"pix_key":  true,
	"pixkey":   true,
}

func RedactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if sensitiveKeys[strings.ToLower(k)] {
			out[k] = redacted
			continue
		}
		out[k] = strings.Join(v, ",")
	}
	return out
}

// RedactJSON returns body with secret values replaced and document numbers
// masked. Bodies that are not JSON are returned truncated to 512 bytes.
func RedactJSON(body []byte) string {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		if len(body) > 512 {
			return string(body[:512]) + "..."
		}
		return string(body)
	}

	out, err := json.Marshal(redactValue(v))
	if err != nil {
		return redacted
	}
	return string(out)
}

func redactValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			key := strings.ToLower(k)
			switch {
			case sensitiveKeys[key]:
				t[k] = redacted
			case documentKeys[key]:
				if s, ok := val.(string); ok {
					t[k] = MaskDocument(s)
				} else {
					t[k] = redactValue(val)
				}
			default:
				t[k] = redactValue(val)
			}
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	default:
		return v
	}
}

func MaskDocument(doc string) string {
	if len(doc) <= 2 {
		return redacted
	}
	return redacted + doc[len(doc)-2:]
}

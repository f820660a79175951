package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMaliciousInput(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		malicious bool
	}{
		{"plain text", "Quiero dos hamburguesas sin cebolla", false},
		{"sql union", "' UNION SELECT password FROM users", true},
		{"sql comment", "admin'--", true},
		{"drop table", "; DROP TABLE orders", true},
		{"script tag", "<script>alert(1)</script>", true},
		{"spaced script tag", "<  script src='x'>", true},
		{"event handler", "<img onerror=alert(1)>", true},
		{"javascript protocol", "javascript:alert(1)", true},
		{"path traversal", "../../etc/passwd", true},
		{"accents are fine", "Más salsa, por favor. ¿Se puede?", false},
		{"innocent on-word", "onions and onion rings", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detected, reasons := DetectMaliciousInput(tc.input)
			assert.Equal(t, tc.malicious, detected)
			if tc.malicious {
				assert.NotEmpty(t, reasons)
			} else {
				assert.Empty(t, reasons)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString("<script>alert(1)</script>"))
	assert.Equal(t, "alert(1)", SanitizeString("javascript:alert(1)"))
	assert.Equal(t, "hola", SanitizeString("  hola  "))
}

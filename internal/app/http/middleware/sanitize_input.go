package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips HTML from every string of a JSON
// body, at any depth. Strings without markup are left byte for byte, so URLs
// and emoji survive untouched. Non-JSON bodies (multipart uploads) pass
// through.
//
// It is meant for content the storefront renders: a string containing "<" or
// ">" is stored HTML-escaped ("< 0,3% THC" becomes "&lt; 0,3% THC"). Do not
// put it in front of credentials.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if c.ContentType() != gin.MIMEJSON {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body any
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		cleaned, changed := sanitizeValue(policy, body)
		if changed {
			buf, _ = json.Marshal(cleaned)
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(buf))
		c.Request.ContentLength = int64(len(buf))

		c.Next()
	}
}

func sanitizeValue(policy *bluemonday.Policy, v any) (any, bool) {
	switch t := v.(type) {
	case string:
		if !strings.ContainsAny(t, "<>") {
			return t, false
		}
		return policy.Sanitize(t), true
	case map[string]any:
		changed := false
		for k, child := range t {
			if cleaned, ok := sanitizeValue(policy, child); ok {
				t[k] = cleaned
				changed = true
			}
		}
		return t, changed
	case []any:
		changed := false
		for i, child := range t {
			if cleaned, ok := sanitizeValue(policy, child); ok {
				t[i] = cleaned
				changed = true
			}
		}
		return t, changed
	default:
		return v, false
	}
}

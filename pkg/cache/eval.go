package cache

import (
	"strings"
	"time"
)

// Fallback texts the evaluator returns when the provider fails. These must
// never be cached, or a transient provider outage would stick for the TTL.
var uncacheable = map[string]struct{}{
	"Error en la evaluación de la transcripción.":    {},
	"Error en la evaluación de la prédica completa.": {},
}

// EvalKey builds the cache key for a section evaluation. Callers key on
// the fully built prompt, not the raw text, so changing a section's
// calibration template never serves an evaluation made with the old one.
func EvalKey(section, prompt string) string {
	return KeyFromStrings("eval", section, prompt)
}

// GetEvaluation returns a cached evaluation text for the key, if any.
func (c *Cache) GetEvaluation(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	text, ok := v.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	if _, bad := uncacheable[text]; bad {
		return "", false
	}
	return text, true
}

// SetEvaluation caches an evaluation text unless it is empty or one of the
// fallback error texts.
func (c *Cache) SetEvaluation(key, text string, ttl time.Duration) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if _, bad := uncacheable[text]; bad {
		return
	}
	c.Set(key, text, ttl)
}

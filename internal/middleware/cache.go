package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CacheConfig struct {
	MaxAge               int
	Public               bool
	StaleWhileRevalidate int
}

// PublicCatalogCacheConfig suits the read-only catalog endpoints: short
// shared cache with a revalidation window.
func PublicCatalogCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:               60,
		Public:               true,
		StaleWhileRevalidate: 300,
	}
}

// Cache adds Cache-Control headers to GET responses.
func Cache(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		directives := make([]string, 0, 3)
		if config.Public {
			directives = append(directives, "public")
		} else {
			directives = append(directives, "private")
		}
		if config.MaxAge > 0 {
			directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
		}
		if config.StaleWhileRevalidate > 0 {
			directives = append(directives, "stale-while-revalidate="+strconv.Itoa(config.StaleWhileRevalidate))
		}

		c.Header("Cache-Control", strings.Join(directives, ", "))
		c.Next()
	}
}

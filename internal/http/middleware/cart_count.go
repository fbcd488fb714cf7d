package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const cartCountKey = "cart_count"

// Counter reports the badge number of a session.
type Counter interface {
	Count(ctx context.Context, ns string) int
}

// CartCount puts the session's cart badge number on the context.
func CartCount(carts Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 0
		if ns := SessionID(c); ns != "" {
			n = carts.Count(c.Request.Context(), ns)
		}
		c.Set(cartCountKey, n)
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	v, ok := c.Get(cartCountKey)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}

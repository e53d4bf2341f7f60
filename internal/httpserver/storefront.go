package httpserver

import (
	"errors"
	"net/http"

	"jewelryshop/internal/domain"
	cartsvc "jewelryshop/internal/service/cart"
	catalogsvc "jewelryshop/internal/service/catalog"
	checkoutsvc "jewelryshop/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     int64             `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func toCartResponse(sess *shopperSession) cartResponse {
	items := sess.cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:     items,
		Total:     sess.cart.Total(),
		ItemCount: sess.cart.ItemCount(),
	}
}

func listProductsHandler(catalog *catalogsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": catalog.List()})
	}
}

func getCartHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		c.JSON(http.StatusOK, toCartResponse(sess))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Option    string `json:"option"`
}

// addCartItemHandler enforces the storefront's add-to-cart contract: the
// product must exist, have stock, and a variant value must be chosen when
// the product has a variant axis. The cart itself stays permissive.
func addCartItemHandler(catalog *catalogsvc.Store, sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId required"})
			return
		}

		product, err := catalog.Get(req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "catalog unavailable"})
			return
		}
		if product.Stock == 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "out of stock"})
			return
		}
		if !cartsvc.CanAdd(*product, req.Option) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "option required"})
			return
		}

		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.cart.AddItem(*product, req.Option)
		c.JSON(http.StatusOK, toCartResponse(sess))
	}
}

type changeCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Option    string `json:"option"`
	Delta     int    `json:"delta" binding:"required"`
}

func changeCartItemHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId and non-zero delta required"})
			return
		}

		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.cart.ChangeQuantity(req.ProductID, req.Option, req.Delta)
		c.JSON(http.StatusOK, toCartResponse(sess))
	}
}

func checkoutStateHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"state": sess.seq.State().String()})
	}
}

// proceedToSummaryHandler owns the non-empty-cart guard; the sequencer only
// checks the state transition itself.
func proceedToSummaryHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.cart.ItemCount() == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
			return
		}
		transition(c, sess, sess.seq.ProceedToSummary)
	}
}

func proceedToPaymentHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		transition(c, sess, sess.seq.ProceedToPayment)
	}
}

func checkoutBackHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		transition(c, sess, sess.seq.Back)
	}
}

func confirmPaymentHandler(sessions *shopperSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.get(c)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if err := sess.seq.ConfirmPayment(c.Request.Context()); err != nil {
			if errors.Is(err, checkoutsvc.ErrInvalidTransition) {
				c.JSON(http.StatusConflict, gin.H{"message": "not on payment screen", "state": sess.seq.State().String()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "confirm payment failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "completed", "state": sess.seq.State().String()})
	}
}

func transition(c *gin.Context, sess *shopperSession, step func() error) {
	if err := step(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "invalid transition", "state": sess.seq.State().String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sess.seq.State().String()})
}

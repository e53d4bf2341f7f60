package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"jewelryshop/internal/domain"
	"jewelryshop/internal/service/adminauth"
	catalogsvc "jewelryshop/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func adminLoginHandler(auth *adminauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "password required"})
			return
		}
		token, err := auth.Login(req.Password)
		if err != nil {
			if errors.Is(err, adminauth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "wrong password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
			return
		}
		c.SetCookie(adminSessionCookie, token, 0, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func adminLogoutHandler(auth *adminauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := adminToken(c); token != "" {
			auth.Logout(token)
		}
		c.SetCookie(adminSessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// optionsForm mirrors the product's single variant axis in admin payloads.
type optionsForm struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// createProductForm carries the raw admin form. Numeric fields arrive as
// strings and are validated here, before anything reaches the catalog.
type createProductForm struct {
	Name      string       `json:"name"`
	Price     string       `json:"price"`
	Stock     string       `json:"stock"`
	Image     string       `json:"image"`
	DetailURL string       `json:"detailUrl"`
	Options   *optionsForm `json:"options"`
}

type updateProductForm struct {
	Name      *string      `json:"name"`
	Price     *string      `json:"price"`
	Stock     *string      `json:"stock"`
	Image     *string      `json:"image"`
	DetailURL *string      `json:"detailUrl"`
	Options   *optionsForm `json:"options"`
}

func createProductHandler(catalog *catalogsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form createProductForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		product, err := parseCreateForm(form)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		created, err := catalog.Add(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "save product failed"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateProductHandler(catalog *catalogsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form updateProductForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		patch, err := parseUpdateForm(form)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		// Unknown ids are a silent no-op by design.
		if err := catalog.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "save product failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteProductHandler(catalog *catalogsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Remove(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "delete product failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type moveDirection int

const (
	moveUp moveDirection = iota
	moveDown
)

func moveProductHandler(catalog *catalogsvc.Store, dir moveDirection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		if dir == moveUp {
			err = catalog.MoveUp(c.Request.Context(), c.Param("id"))
		} else {
			err = catalog.MoveDown(c.Request.Context(), c.Param("id"))
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "reorder failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func parseCreateForm(form createProductForm) (domain.Product, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return domain.Product{}, errors.New("name required")
	}
	price, err := parseYen("price", form.Price)
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := parseCount("stock", form.Stock)
	if err != nil {
		return domain.Product{}, err
	}
	options, err := parseOptions(form.Options)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		Name:      name,
		Price:     price,
		Stock:     stock,
		Image:     form.Image,
		DetailURL: form.DetailURL,
		Options:   options,
	}, nil
}

func parseUpdateForm(form updateProductForm) (catalogsvc.Patch, error) {
	var patch catalogsvc.Patch
	if form.Name != nil {
		name := strings.TrimSpace(*form.Name)
		if name == "" {
			return catalogsvc.Patch{}, errors.New("name must not be empty")
		}
		patch.Name = &name
	}
	if form.Price != nil {
		price, err := parseYen("price", *form.Price)
		if err != nil {
			return catalogsvc.Patch{}, err
		}
		patch.Price = &price
	}
	if form.Stock != nil {
		stock, err := parseCount("stock", *form.Stock)
		if err != nil {
			return catalogsvc.Patch{}, err
		}
		patch.Stock = &stock
	}
	if form.Image != nil {
		patch.Image = form.Image
	}
	if form.DetailURL != nil {
		patch.DetailURL = form.DetailURL
	}
	if form.Options != nil {
		options, err := parseOptions(form.Options)
		if err != nil {
			return catalogsvc.Patch{}, err
		}
		patch.Options = options
	}
	return patch, nil
}

func parseYen(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return v, nil
}

func parseCount(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return v, nil
}

func parseOptions(form *optionsForm) (*domain.ProductOptions, error) {
	if form == nil {
		return nil, nil
	}
	label := strings.TrimSpace(form.Label)
	if label == "" {
		return nil, errors.New("options label required")
	}
	values := make([]string, 0, len(form.Values))
	for _, v := range form.Values {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, errors.New("options values required")
	}
	return &domain.ProductOptions{Label: label, Values: values}, nil
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/suppliers"
)

type namedEntityRequest struct {
	CategoryName string `json:"categoryName"`
	LocationName string `json:"locationName"`
	Description  string `json:"description"`
}

func (a *API) listCategories(c *gin.Context) {
	out, err := a.catalog.ListCategories(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) createCategory(c *gin.Context) {
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.catalog.CreateCategory(c.Request.Context(), req.CategoryName, req.Description)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Category added successfully"})
}

func (a *API) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.catalog.UpdateCategory(c.Request.Context(), id, req.CategoryName, req.Description); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (a *API) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (a *API) listLocations(c *gin.Context) {
	out, err := a.catalog.ListLocations(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) createLocation(c *gin.Context) {
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.catalog.CreateLocation(c.Request.Context(), req.LocationName, req.Description)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Location added successfully"})
}

func (a *API) updateLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req namedEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.catalog.UpdateLocation(c.Request.Context(), id, req.LocationName, req.Description); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"})
}

func (a *API) deleteLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.catalog.DeleteLocation(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

/* Suppliers */

func (a *API) listSuppliers(c *gin.Context) {
	out, err := a.suppliers.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) createSupplier(c *gin.Context) {
	var in suppliers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.suppliers.Create(c.Request.Context(), in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Supplier added successfully"})
}

func (a *API) updateSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in suppliers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.suppliers.Update(c.Request.Context(), id, in); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier updated successfully"})
}

func (a *API) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	affected, err := a.suppliers.Delete(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully", "itemsAffected": affected})
}

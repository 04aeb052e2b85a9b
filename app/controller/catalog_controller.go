package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// CatalogController handles HTTP requests for the product catalog: products,
// materials, and works.
type CatalogController struct {
	products  repository.ProductRepositoryInterface
	materials repository.MaterialRepositoryInterface
	works     repository.WorkRepositoryInterface
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(
	products repository.ProductRepositoryInterface,
	materials repository.MaterialRepositoryInterface,
	works repository.WorkRepositoryInterface,
) *CatalogController {
	return &CatalogController{
		products:  products,
		materials: materials,
		works:     works,
	}
}

func productFromRequest(req *models.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.BasePrice < 0 {
		return nil, fmt.Errorf("base price cannot be negative")
	}

	product := &models.Product{
		Name:      name,
		Category:  strings.TrimSpace(req.Category),
		BasePrice: req.BasePrice,
	}
	for _, pw := range req.Works {
		product.DefaultWorks = append(product.DefaultWorks, models.ProductWork{
			WorkID:          pw.WorkID,
			DefaultQuantity: pw.DefaultQuantity,
		})
	}
	return product, nil
}

// ListProducts handles GET /admin/products.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /admin/products/{id}.
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := c.products.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /admin/products.
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	product, err := productFromRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.products.Create(r.Context(), product); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/{id}.
func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	product, err := productFromRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product.ID = id

	if err := c.products.Update(r.Context(), product); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/{id}.
func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := c.products.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMaterials handles GET /admin/materials.
func (c *CatalogController) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := c.materials.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

// CreateMaterial handles POST /admin/materials.
func (c *CatalogController) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var material models.Material
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if strings.TrimSpace(material.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := c.materials.Create(r.Context(), &material); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, material)
}

// UpdateMaterial handles PUT /admin/materials/{id}.
func (c *CatalogController) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}

	var material models.Material
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	material.ID = id

	if err := c.materials.Update(r.Context(), &material); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// DeleteMaterial handles DELETE /admin/materials/{id}.
func (c *CatalogController) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}

	if err := c.materials.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWorks handles GET /admin/works.
func (c *CatalogController) ListWorks(w http.ResponseWriter, r *http.Request) {
	works, err := c.works.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, works)
}

// CreateWork handles POST /admin/works.
func (c *CatalogController) CreateWork(w http.ResponseWriter, r *http.Request) {
	var work models.Work
	if err := json.NewDecoder(r.Body).Decode(&work); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if strings.TrimSpace(work.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := c.works.Create(r.Context(), &work); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, work)
}

// UpdateWork handles PUT /admin/works/{id}.
func (c *CatalogController) UpdateWork(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid work id")
		return
	}

	var work models.Work
	if err := json.NewDecoder(r.Body).Decode(&work); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	work.ID = id

	if err := c.works.Update(r.Context(), &work); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, work)
}

// DeleteWork handles DELETE /admin/works/{id}.
func (c *CatalogController) DeleteWork(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid work id")
		return
	}

	if err := c.works.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/fitsetup/app/services"
	"github.com/shashiranjanraj/fitsetup/pkg/response"
	"github.com/shashiranjanraj/fitsetup/pkg/validate"
)

// maxUploadBytes caps a product image upload form.
const maxUploadBytes = 32 << 20

// ProductController serves the public catalog and the admin product CRUD.
type ProductController struct {
	svc *services.CatalogService
}

func NewProductController(svc *services.CatalogService) *ProductController {
	return &ProductController{svc: svc}
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := services.ListQuery{
		Category:    q.Get("category"),
		SubCategory: q.Get("subCategory"),
		Search:      q.Get("search"),
		Sort:        q.Get("sort"),
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		query.Featured = &featured
	}
	query.Page, _ = strconv.Atoi(q.Get("page"))
	query.PerPage, _ = strconv.Atoi(q.Get("perPage"))

	page, err := c.svc.List(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, page)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}
	p, err := c.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, p)
}

// Store creates a product from a multipart form: scalar fields plus any
// number of "images" file parts.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	in, uploads, errs, err := parseProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	p, err := c.svc.Create(r.Context(), *in, uploads)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, p)
}

// Update rewrites a product. The "existingImages" field carries a JSON array
// of gallery URLs to keep; omitted URLs are deleted from the object store.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}

	in, uploads, errs, err := parseProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	keep := []string{}
	if raw := r.FormValue("existingImages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &keep); err != nil {
			response.Error(w, http.StatusBadRequest, "existingImages must be a JSON array of URLs")
			return
		}
	}

	p, err := c.svc.Update(r.Context(), id, *in, keep, uploads)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, p)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w)
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Product deleted")
}

func parseProductForm(r *http.Request) (*services.ProductInput, []services.ImageUpload, map[string]string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, nil, err
	}

	in := &services.ProductInput{
		Name:        r.FormValue("name"),
		SKU:         r.FormValue("sku"),
		Description: r.FormValue("description"),
		ShortDesc:   r.FormValue("shortDesc"),
		Category:    r.FormValue("category"),
		SubCategory: r.FormValue("subCategory"),
		Featured:    r.FormValue("featured") == "true",
	}
	in.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	in.Discount, _ = strconv.ParseFloat(r.FormValue("discount"), 64)
	in.Stock, _ = strconv.Atoi(r.FormValue("stock"))
	if raw := r.FormValue("specs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Specs); err != nil {
			return nil, nil, map[string]string{"specs": "The specs must be a valid JSON object."}, nil
		}
	}

	if errs := validate.Struct(in); len(errs) > 0 {
		return nil, nil, errs, nil
	}

	uploads := []services.ImageUpload{}
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err != nil {
				return nil, nil, nil, err
			}
			uploads = append(uploads, services.ImageUpload{Filename: fh.Filename, Content: f})
		}
	}
	return in, uploads, nil, nil
}

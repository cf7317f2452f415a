package console

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/service"
	"lumina/internal/storage"
)

// ProductForm holds the values of the new product form. Price stays text so a bad
// value is shown back to the admin as typed.
type ProductForm struct {
	Title        string
	Price        string
	ImageURL     string
	PurchaseLink string
}

// ProductsManager is the Products tab.
type ProductsManager struct {
	*crudManager[model.Product, ProductForm, model.ProductInput]
}

func NewProductsManager(products service.ProductService, uploads service.UploadService) *ProductsManager {
	return &ProductsManager{newCRUDManager[model.Product, ProductForm, model.ProductInput](products, uploads, storage.BucketProducts, formSpec[model.Product, ProductForm, model.ProductInput]{
		noun:        "product",
		createLabel: "Product",
		id:          func(p model.Product) string { return p.ID },
		imageURL:    func(f ProductForm) string { return f.ImageURL },
		setImageURL: func(f *ProductForm, url string) { f.ImageURL = url },
		input:       productInput,
	})}
}

func productInput(f ProductForm) (model.ProductInput, error) {
	raw := strings.TrimSpace(f.Price)
	if raw == "" {
		raw = "0"
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return model.ProductInput{}, &apperrors.ValidationError{Fields: []string{"price"}}
	}
	return model.ProductInput{
		Title:        strings.TrimSpace(f.Title),
		Price:        price,
		ImageURL:     f.ImageURL,
		PurchaseLink: strings.TrimSpace(f.PurchaseLink),
	}, nil
}

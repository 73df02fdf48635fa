package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	provision *appinv.ProvisionProductUseCase
	uc        *usecase.ProductUseCase
	errs      errorWriter
}

// NewProductHandler construye el handler.
func NewProductHandler(provision *appinv.ProvisionProductUseCase, uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{provision: provision, uc: uc, errs: newErrorWriter(log)}
}

// Create godoc
// @Summary      Crear producto con inventario inicial
// @Description  Crea el producto y su fila de inventario en la bodega indicada de forma atómica.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	product, err := h.provision.CreateProduct(c.UserContext(), toProductDraft(in))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateProductResponse{
		Message:   "Product created",
		ProductID: product.ID,
	})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

func toProductDraft(in dto.CreateProductRequest) inventory.ProductDraft {
	d := inventory.ProductDraft{
		Name:              in.Name,
		SKU:               in.SKU,
		Price:             in.Price,
		WarehouseID:       in.WarehouseID,
		InitialQuantity:   in.InitialQuantity,
		SupplierID:        in.SupplierID,
		LowStockThreshold: in.LowStockThreshold,
		IsBundle:          in.IsBundle,
	}
	for _, bc := range in.BundleComponents {
		d.BundleComponents = append(d.BundleComponents, entity.BundleComponent{ComponentID: bc.ComponentID, Quantity: bc.Quantity})
	}
	return d
}

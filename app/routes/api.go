package routes

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bizapi/app/controllers"
	"github.com/shashiranjanraj/bizapi/app/repositories"
	"github.com/shashiranjanraj/bizapi/pkg/cache"
	"github.com/shashiranjanraj/bizapi/pkg/ctx"
	"github.com/shashiranjanraj/bizapi/pkg/router"
)

// Deps are the shared handles the API controllers are built from.
type Deps struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
}

func RegisterAPI(r *router.Router, d Deps) {
	invoices := controllers.NewInvoiceController(repositories.NewInvoiceRepository(d.DB, d.Cache, d.CacheTTL))
	products := controllers.NewProductController(repositories.NewProductRepository(d.DB, d.Cache, d.CacheTTL))
	users := controllers.NewUserController(repositories.NewUserRepository(d.DB, d.Cache, d.CacheTTL))
	roles := controllers.NewRoleController(repositories.NewRoleRepository(d.DB, d.Cache, d.CacheTTL))

	api := r.Group("/api")
	resource(api.Group("/invoices"), "invoices", invoices)
	resource(api.Group("/products"), "products", products)
	resource(api.Group("/product"), "product", products) // singular path kept for older clients
	resource(api.Group("/users"), "users", users)
	resource(api.Group("/roles"), "roles", roles)
}

// resource mounts the six CRUD routes of one controller on g.
func resource[T, C, U any](g *router.Group, name string, c *controllers.Resource[T, C, U]) {
	g.Get("/", name+".index", ctx.Wrap(c.Index))
	g.Post("/", name+".store", ctx.Wrap(c.Store))
	g.Get("/{id}", name+".show", ctx.Wrap(c.Show))
	g.Put("/{id}", name+".update", ctx.Wrap(c.Replace))
	g.Patch("/{id}", name+".patch", ctx.Wrap(c.Patch))
	g.Delete("/{id}", name+".destroy", ctx.Wrap(c.Destroy))
}

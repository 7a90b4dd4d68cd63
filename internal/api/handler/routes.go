package handler

import (
	"net/http"

	"github.com/rmaestri/shop-manager-api/internal/api/handler/router"
	"github.com/rmaestri/shop-manager-api/internal/scheduler"
	"github.com/rmaestri/shop-manager-api/internal/usecases/authenticating"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Users(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Products(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Clients(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sequences/client-number",
			Method:      http.MethodPost,
			Handler:     NextClientNumber(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Sales(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sequences/order-number",
			Method:      http.MethodPost,
			Handler:     NextOrderNumber(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Transactions(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/transactions",
			Method:      http.MethodGet,
			Handler:     ListTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodPost,
			Handler:     CreateTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTransaction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Catalog(service *storing.Service) []router.Route {
	all := middleware.AllRoles()
	admin := middleware.AdminOnly()

	routes := []router.Route{}

	entity := func(path string, list, create http.HandlerFunc, remove http.HandlerFunc) {
		routes = append(routes,
			router.Route{Path: path, Method: http.MethodGet, Handler: list, Middlewares: []func(http.Handler) http.Handler{all}},
			router.Route{Path: path, Method: http.MethodPost, Handler: create, Middlewares: []func(http.Handler) http.Handler{all}},
			router.Route{Path: path + "/:id", Method: http.MethodDelete, Handler: remove, Middlewares: []func(http.Handler) http.Handler{admin}},
		)
	}

	entity("/v1/categories", listCatalog(service.GetCategories), createCatalog(service.AddCategory), deleteCatalog(service.DeleteCategory))
	entity("/v1/locations", listCatalog(service.GetLocations), createCatalog(service.AddLocation), deleteCatalog(service.DeleteLocation))
	entity("/v1/physical-locations", listCatalog(service.GetPhysicalLocations), createCatalog(service.AddPhysicalLocation), deleteCatalog(service.DeletePhysicalLocation))
	entity("/v1/boxes", listCatalog(service.GetBoxes), createCatalog(service.AddBox), deleteCatalog(service.DeleteBox))
	entity("/v1/brands", listCatalog(service.GetBrands), createCatalog(service.AddBrand), deleteCatalog(service.DeleteBrand))
	entity("/v1/knowledge", listCatalog(service.GetKnowledge), createCatalog(service.AddKnowledge), deleteCatalog(service.DeleteKnowledge))
	entity("/v1/warranties", listCatalog(service.GetWarranties), createCatalog(service.AddWarranty), deleteCatalog(service.DeleteWarranty))
	entity("/v1/checklists", listCatalog(service.GetChecklists), createCatalog(service.AddChecklist), deleteCatalog(service.DeleteChecklist))

	return routes
}

func Settings(service *storing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/settings",
			Method:      http.MethodGet,
			Handler:     GetSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings",
			Method:      http.MethodPut,
			Handler:     SaveSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Tenants(service *storing.Service, backup *scheduler.BackupExportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tenants",
			Method:      http.MethodGet,
			Handler:     ListTenants(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/tenants/export",
			Method:      http.MethodGet,
			Handler:     ExportTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/tenants/clear-financial",
			Method:      http.MethodPost,
			Handler:     ClearFinancialData(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/tenants/:id",
			Method:      http.MethodDelete,
			Handler:     PurgeTenant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/audit-logs",
			Method:      http.MethodGet,
			Handler:     AuditLogs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/backups/status",
			Method:      http.MethodGet,
			Handler:     BackupStatus(backup),
			Middlewares: []func(http.Handler) http.Handler{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/backups/run",
			Method:      http.MethodPost,
			Handler:     TriggerBackup(backup),
			Middlewares: []func(http.Handler) http.Handler{middleware.MasterOnly()},
		},
	}
}

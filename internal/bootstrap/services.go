package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/profSauloRenato/agenda-setor-vespasiano/config"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/data"
	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Resolver *service.AuthorizationResolver
	Login    *service.LoginUser
	Cargos   CargoUseCases
	Repos    Repositories
}

// CargoUseCases groups the admin-gated role operations.
type CargoUseCases struct {
	List   *service.ListCargos
	Create *service.CreateCargo
	Update *service.UpdateCargo
	Delete *service.DeleteCargo
}

// Repositories groups data adapters backing service ports.
type Repositories struct {
	Cargos    *data.CargoRepo
	Profiles  *data.UserProfileRepo
	Locations *data.LocationRepo
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Auth    config.AuthConfig
	Gateway ports.IdentityGateway
	Stores  StoreDeps
}

// StoreDeps carries the storage handle and logger shared by every service.
type StoreDeps struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// NewServices wires repositories, the authorization resolver, the auth service
// and the role use cases. Every dependency is passed explicitly.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Stores.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := Repositories{
		Cargos:    data.NewCargoRepo(deps.Stores.DB),
		Profiles:  data.NewUserProfileRepo(deps.Stores.DB),
		Locations: data.NewLocationRepo(deps.Stores.DB),
	}

	resolver := service.NewAuthorizationResolver(service.AuthorizationResolverOptions{
		Profiles: repos.Profiles,
		Policy:   domainauth.AdminPolicy{SentinelRole: deps.Auth.AdminRoleName},
		Logger:   logger,
	})

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Gateway:  deps.Gateway,
		Resolver: resolver,
		Registration: service.RegistrationConfig{
			Profiles:          repos.Profiles,
			Locations:         repos.Locations,
			DefaultLocationID: deps.Auth.DefaultLocationID,
		},
		Logger: logger,
	})

	return ServiceContainer{
		Auth:     authSvc,
		Resolver: resolver,
		Login:    service.NewLoginUser(authSvc),
		Cargos: CargoUseCases{
			List:   service.NewListCargos(repos.Cargos),
			Create: service.NewCreateCargo(repos.Cargos),
			Update: service.NewUpdateCargo(repos.Cargos),
			Delete: service.NewDeleteCargo(repos.Cargos),
		},
		Repos: repos,
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/estilourbano/tienda/internal/domain"
)

type UserUC struct {
	Users domain.UserRepo
}

// Register creates a credentials account. The very first account ever created
// is promoted to admin so a fresh deployment can be bootstrapped without
// touching the database.
func (uc *UserUC) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.Validation("Email y contraseña son obligatorios")
	}
	if _, err := uc.Users.FindByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("El email ya está registrado")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if n, err := uc.Users.Count(ctx); err != nil {
		return nil, err
	} else if n == 0 {
		role = domain.RoleAdmin
	}

	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Provider:     "credentials",
	}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *UserUC) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.CodeUnauthorized, "Credenciales inválidas")
		}
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "Credenciales inválidas")
	}
	return u, nil
}

// EnsureOAuthUser finds or creates the account backing an OAuth login. A brand
// new account still gets the first-user-admin bootstrap.
func (uc *UserUC) EnsureOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Validation("Email requerido")
	}
	if u, err := uc.Users.FindByEmail(ctx, email); err == nil {
		return u, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	role := domain.RoleUser
	if n, err := uc.Users.Count(ctx); err != nil {
		return nil, err
	} else if n == 0 {
		role = domain.RoleAdmin
	}
	u := &domain.User{ID: uuid.New(), Name: name, Email: email, Role: role, Provider: "google"}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Create is the admin-side user creation; unlike Register it accepts a role.
func (uc *UserUC) Create(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.Validation("Email y contraseña son requeridos")
	}
	r := domain.RoleUser
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, domain.Validation("Rol inválido")
		}
		r = parsed
	}
	if _, err := uc.Users.FindByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("El email ya está registrado")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         r,
		Provider:     "credentials",
	}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

func (uc *UserUC) Update(ctx context.Context, id uuid.UUID, p UserPatch) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email != "" && email != u.Email {
			if _, err := uc.Users.FindByEmail(ctx, email); err == nil {
				return nil, domain.Conflict("El email ya está registrado")
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil && *p.Role != "" {
		r, ok := domain.ParseRole(*p.Role)
		if !ok {
			return nil, domain.Validation("Rol inválido")
		}
		u.Role = r
	}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetRole changes a user's role. Admins cannot change their own role.
func (uc *UserUC) SetRole(ctx context.Context, id uuid.UUID, role, actorEmail string) (*domain.User, error) {
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.Validation("Rol inválido")
	}
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	if strings.EqualFold(u.Email, actorEmail) {
		return nil, domain.Validation("No puedes cambiar tu propio rol")
	}
	u.Role = r
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (uc *UserUC) Delete(ctx context.Context, id uuid.UUID, actorEmail string) error {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Usuario no encontrado")
		}
		return err
	}
	if strings.EqualFold(u.Email, actorEmail) {
		return domain.Validation("No puedes eliminar tu propia cuenta")
	}
	return uc.Users.Delete(ctx, id)
}

func (uc *UserUC) List(ctx context.Context) ([]domain.User, error) {
	return uc.Users.List(ctx)
}

func (uc *UserUC) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Usuario no encontrado")
		}
		return nil, err
	}
	return u, nil
}

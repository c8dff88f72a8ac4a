package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
	"github.com/peopleops/hr-management/internal/employee"
	"github.com/peopleops/hr-management/internal/user"
)

// Per-operation allow-lists. Read operations carry an empty list, which
// admits any caller holding a verified token. Login is the only field that
// skips the guard entirely.
var (
	userAdminRoles = []auth.Role{
		auth.RoleSystemAdmin,
		auth.RoleAdmin,
	}
	employeeManagerRoles = []auth.Role{
		auth.RoleSystemAdmin,
		auth.RoleAdmin,
		auth.RoleCompanyHR,
	}
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"created":  &graphql.Field{Type: graphql.DateTime},
		"updated":  &graphql.Field{Type: graphql.DateTime},
	},
})

var employeeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Employee",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"jobTitle":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"department": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"created":    &graphql.Field{Type: graphql.DateTime},
		"updated":    &graphql.Field{Type: graphql.DateTime},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"access_token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"refresh_token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"username":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

// Schema builds the executable schema over the resolver set.
func (r *Resolvers) Schema() (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.protect(nil, r.resolveUsers),
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protect(nil, r.resolveUser),
			},
			"employees": &graphql.Field{
				Type:    graphql.NewList(employeeType),
				Resolve: r.protect(nil, r.resolveEmployees),
			},
			"employee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protect(nil, r.resolveEmployee),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.unguarded(r.resolveLogin),
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.protect(userAdminRoles, r.resolveCreateUser),
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"role":     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.protect(userAdminRoles, r.resolveUpdateUser),
			},
			"deleteUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protect(userAdminRoles, r.resolveDeleteUser),
			},
			"createEmployee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"name":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"jobTitle":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"department": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protect(employeeManagerRoles, r.resolveCreateEmployee),
			},
			"updateEmployee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":       &graphql.ArgumentConfig{Type: graphql.String},
					"email":      &graphql.ArgumentConfig{Type: graphql.String},
					"jobTitle":   &graphql.ArgumentConfig{Type: graphql.String},
					"department": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.protect(employeeManagerRoles, r.resolveUpdateEmployee),
			},
			"deleteEmployee": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.protect(employeeManagerRoles, r.resolveDeleteEmployee),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// protect runs the guard before the wrapped resolver. An empty allow-list
// still requires a verified token; only login bypasses the guard.
func (r *Resolvers) protect(allowed []auth.Role, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		claims, err := r.guard.Authorize(p.Context, allowed)
		if err != nil {
			return nil, wrapError(err)
		}
		p.Context = auth.ContextWithClaims(p.Context, claims)

		out, err := resolve(p)
		return out, wrapError(err)
	}
}

func (r *Resolvers) unguarded(resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := resolve(p)
		return out, wrapError(err)
	}
}

func (r *Resolvers) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	payload, err := r.auth.Login(p.Context, stringArg(p, "username"), stringArg(p, "password"))
	if err != nil {
		return nil, err
	}
	return viewAuthPayload(payload), nil
}

func (r *Resolvers) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	found, err := r.users.FindAll(p.Context)
	if err != nil {
		return nil, err
	}
	views := make([]*user.PublicUser, len(found))
	for i, u := range found {
		views[i] = u.Public()
	}
	return views, nil
}

func (r *Resolvers) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	u, err := r.users.FindByID(p.Context, stringArg(p, "id"))
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

func (r *Resolvers) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	dto := user.CreateUserDTO{
		Username: stringArg(p, "username"),
		Email:    stringArg(p, "email"),
		Password: stringArg(p, "password"),
		Role:     intArg(p, "role"),
	}

	// Check-then-create: not atomic, acceptable under the expected write
	// rates. The storage layer's unique index backstops races.
	if _, err := r.users.FindByUsername(p.Context, dto.Username); err == nil {
		return nil, internal.ErrUsernameTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	u, err := r.users.Create(p.Context, dto)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

func (r *Resolvers) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")

	// The existence probe fails with the not-found kind for missing users.
	if _, err := r.users.FindByID(p.Context, id); err != nil {
		return nil, err
	}

	dto := user.UpdateUserDTO{
		Username: optionalStringArg(p, "username"),
		Email:    optionalStringArg(p, "email"),
		Role:     optionalIntArg(p, "role"),
	}
	u, err := r.users.Update(p.Context, id, dto)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

func (r *Resolvers) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	if _, err := r.users.FindByID(p.Context, id); err != nil {
		return nil, err
	}
	if err := r.users.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolvers) resolveEmployees(p graphql.ResolveParams) (interface{}, error) {
	return r.employees.FindAll(p.Context)
}

func (r *Resolvers) resolveEmployee(p graphql.ResolveParams) (interface{}, error) {
	return r.employees.FindByID(p.Context, stringArg(p, "id"))
}

func (r *Resolvers) resolveCreateEmployee(p graphql.ResolveParams) (interface{}, error) {
	dto := employee.CreateEmployeeDTO{
		Name:       stringArg(p, "name"),
		Email:      stringArg(p, "email"),
		JobTitle:   stringArg(p, "jobTitle"),
		Department: stringArg(p, "department"),
	}

	existing, err := r.employees.Query(p.Context, map[string]interface{}{"email": dto.Email})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		r.logger.Warn("employee email already in use", "email", dto.Email)
		return nil, internal.ErrEmployeeEmailTaken
	}

	return r.employees.Create(p.Context, dto)
}

func (r *Resolvers) resolveUpdateEmployee(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")

	// Mutating a missing employee is a conflict, unlike the read path
	// where a missing id is plain not-found.
	if _, err := r.employees.FindByID(p.Context, id); err != nil {
		if isNotFound(err) {
			return nil, internal.ErrEmployeeMissing
		}
		return nil, err
	}

	dto := employee.UpdateEmployeeDTO{
		Name:       optionalStringArg(p, "name"),
		Email:      optionalStringArg(p, "email"),
		JobTitle:   optionalStringArg(p, "jobTitle"),
		Department: optionalStringArg(p, "department"),
	}
	return r.employees.Update(p.Context, id, dto)
}

func (r *Resolvers) resolveDeleteEmployee(p graphql.ResolveParams) (interface{}, error) {
	id := stringArg(p, "id")
	if _, err := r.employees.FindByID(p.Context, id); err != nil {
		if isNotFound(err) {
			return nil, internal.ErrEmployeeMissing
		}
		return nil, err
	}
	if err := r.employees.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

func isNotFound(err error) bool {
	app, ok := internal.IsAppError(err)
	return ok && app.Type == internal.ErrorTypeNotFound
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func optionalIntArg(p graphql.ResolveParams, name string) *int {
	if v, ok := p.Args[name].(int); ok {
		return &v
	}
	return nil
}

package graphql_test

import (
	"context"
	"sync"
	"time"

	gql "github.com/graphql-go/graphql"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops/hr-management/internal"
	"github.com/peopleops/hr-management/internal/auth"
	"github.com/peopleops/hr-management/internal/core/events"
	"github.com/peopleops/hr-management/internal/employee"
	"github.com/peopleops/hr-management/internal/transport/graphql"
	"github.com/peopleops/hr-management/internal/user"
	"github.com/peopleops/hr-management/pkg/logger"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (r *memUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return internal.ErrUserNotFound
	}
	if v, ok := fields["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := fields["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := fields["role"]; ok {
		u.Role = auth.Role(v.(int))
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Query(ctx context.Context, criteria map[string]interface{}) ([]*user.User, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*user.User, 0)
	for _, u := range all {
		if v, ok := criteria["email"]; ok && u.Email != v.(string) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type memEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]*employee.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: make(map[string]*employee.Employee)}
}

func (r *memEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	clone := *e
	r.employees[e.ID] = &clone
	return nil
}

func (r *memEmployeeRepo) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *memEmployeeRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return internal.ErrEmployeeNotFound
	}
	if v, ok := fields["name"]; ok {
		e.Name = v.(string)
	}
	if v, ok := fields["email"]; ok {
		e.Email = v.(string)
	}
	if v, ok := fields["job_title"]; ok {
		e.JobTitle = v.(string)
	}
	if v, ok := fields["department"]; ok {
		e.Department = v.(string)
	}
	e.UpdatedAt = time.Now()
	return nil
}

func (r *memEmployeeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.employees, id)
	return nil
}

func (r *memEmployeeRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.employees)), nil
}

func (r *memEmployeeRepo) Query(ctx context.Context, criteria map[string]interface{}) ([]*employee.Employee, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*employee.Employee, 0)
	for _, e := range all {
		if v, ok := criteria["email"]; ok && e.Email != v.(string) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, event events.Event) error { return nil }

var _ = Describe("GraphQL Schema", func() {
	const (
		secret        = "graphql-test-secret"
		adminPassword = "Test1234?"
	)

	var (
		schema      gql.Schema
		userRepo    *memUserRepo
		empRepo     *memEmployeeRepo
		tokens      *auth.TokenIssuer
		adminToken  string
		workerToken string
	)

	execute := func(query string, token string) *gql.Result {
		ctx := context.Background()
		if token != "" {
			ctx = internal.ContextWithToken(ctx, token)
		}
		return gql.Do(gql.Params{
			Schema:        schema,
			RequestString: query,
			Context:       ctx,
		})
	}

	errExtensions := func(result *gql.Result) map[string]interface{} {
		Expect(result.Errors).NotTo(BeEmpty())
		return result.Errors[0].Extensions
	}

	loginToken := func(username, password string) string {
		result := execute(`mutation { login(username: "`+username+`", password: "`+password+`") { access_token } }`, "")
		Expect(result.Errors).To(BeEmpty())
		payload := result.Data.(map[string]interface{})["login"].(map[string]interface{})
		return payload["access_token"].(string)
	}

	BeforeEach(func() {
		log := logger.L()
		hasher := auth.NewHasher(bcrypt.MinCost)
		tokens = auth.NewTokenIssuer(secret, time.Hour)

		userRepo = newMemUserRepo()
		empRepo = newMemEmployeeRepo()

		userSvc := user.NewService(userRepo, hasher, log)
		empSvc := employee.NewService(empRepo, noopPublisher{}, log)
		authSvc := auth.NewService(user.NewCredentialStore(userSvc), hasher, tokens, log)
		guard := auth.NewGuard(tokens, log)

		for _, seed := range []user.CreateUserDTO{
			{Username: "admin", Email: "admin@admin.com", Password: adminPassword, Role: int(auth.RoleAdmin)},
			{Username: "employee", Email: "employee@employee.com", Password: adminPassword, Role: int(auth.RoleEmployee)},
		} {
			_, err := userSvc.Create(context.Background(), seed)
			Expect(err).NotTo(HaveOccurred())
		}

		resolvers := graphql.NewResolvers(authSvc, userSvc, empSvc, guard, log)
		var err error
		schema, err = resolvers.Schema()
		Expect(err).NotTo(HaveOccurred())

		adminToken = loginToken("admin", adminPassword)
		workerToken = loginToken("employee", adminPassword)
	})

	Describe("login", func() {
		It("returns tokens and the role for valid credentials", func() {
			result := execute(`mutation { login(username: "admin", password: "Test1234?") { access_token refresh_token username role } }`, "")
			Expect(result.Errors).To(BeEmpty())

			payload := result.Data.(map[string]interface{})["login"].(map[string]interface{})
			Expect(payload["access_token"]).NotTo(BeEmpty())
			Expect(payload["refresh_token"]).NotTo(BeEmpty())
			Expect(payload["username"]).To(Equal("admin"))
			Expect(payload["role"]).To(Equal(0))
		})

		It("rejects a wrong password", func() {
			result := execute(`mutation { login(username: "admin", password: "nope") { access_token } }`, "")
			ext := errExtensions(result)
			Expect(ext["kind"]).To(Equal("UNAUTHENTICATED"))
			Expect(ext["code"]).To(Equal("INCORRECT_PASSWORD"))
		})

		It("rejects an unknown username", func() {
			result := execute(`mutation { login(username: "ghost", password: "whatever") { access_token } }`, "")
			Expect(errExtensions(result)["kind"]).To(Equal("NOT_FOUND"))
		})
	})

	Describe("token enforcement", func() {
		It("rejects queries without a token", func() {
			result := execute(`{ users { id } }`, "")
			ext := errExtensions(result)
			Expect(ext["kind"]).To(Equal("UNAUTHENTICATED"))
			Expect(ext["code"]).To(Equal("NO_TOKEN"))
		})

		It("rejects a forged token", func() {
			forged := auth.NewTokenIssuer("some-other-secret", time.Hour)
			token, err := forged.IssueAccessToken(&auth.Credential{Username: "admin", Role: auth.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())

			result := execute(`{ users { id } }`, token)
			Expect(errExtensions(result)["code"]).To(Equal("INVALID_TOKEN"))
		})

		It("rejects an expired token", func() {
			shortLived := auth.NewTokenIssuer(secret, time.Millisecond)
			token, err := shortLived.IssueAccessToken(&auth.Credential{Username: "admin", Role: auth.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() interface{} {
				result := execute(`{ users { id } }`, token)
				if len(result.Errors) == 0 {
					return nil
				}
				return result.Errors[0].Extensions["kind"]
			}, time.Second, 10*time.Millisecond).Should(Equal("TOKEN_EXPIRED"))
		})
	})

	Describe("role allow-lists", func() {
		It("admits any verified caller to read operations", func() {
			result := execute(`{ users { username } }`, workerToken)
			Expect(result.Errors).To(BeEmpty())

			users := result.Data.(map[string]interface{})["users"].([]interface{})
			usernames := make([]string, 0, len(users))
			for _, u := range users {
				usernames = append(usernames, u.(map[string]interface{})["username"].(string))
			}
			Expect(usernames).To(ContainElement("admin"))
		})

		It("rejects user mutations from a non-admin role", func() {
			result := execute(`mutation { createUser(username: "x", email: "x@x.com", password: "Password1", role: 3) { id } }`, workerToken)
			ext := errExtensions(result)
			Expect(ext["kind"]).To(Equal("FORBIDDEN"))
			Expect(ext["code"]).To(Equal("ROLE_NOT_ALLOWED"))
		})
	})

	Describe("user mutations", func() {
		It("creates a user and never returns a password field", func() {
			result := execute(`mutation { createUser(username: "newbie", email: "n@x.com", password: "Password1", role: 3) { id username email role } }`, adminToken)
			Expect(result.Errors).To(BeEmpty())

			created := result.Data.(map[string]interface{})["createUser"].(map[string]interface{})
			Expect(created["username"]).To(Equal("newbie"))
			Expect(created["role"]).To(Equal(3))
			Expect(created).NotTo(HaveKey("password"))
		})

		It("rejects a duplicate username with a conflict", func() {
			result := execute(`mutation { createUser(username: "admin", email: "a@x.com", password: "Password1", role: 0) { id } }`, adminToken)
			ext := errExtensions(result)
			Expect(ext["kind"]).To(Equal("CONFLICT"))
			Expect(ext["code"]).To(Equal("USERNAME_TAKEN"))
		})

		It("applies partial updates and leaves other fields untouched", func() {
			existing, err := userRepo.FindByUsername(context.Background(), "employee")
			Expect(err).NotTo(HaveOccurred())

			result := execute(`mutation { updateUser(id: "`+existing.ID+`", email: "changed@x.com") { username email role } }`, adminToken)
			Expect(result.Errors).To(BeEmpty())

			updated := result.Data.(map[string]interface{})["updateUser"].(map[string]interface{})
			Expect(updated["email"]).To(Equal("changed@x.com"))
			Expect(updated["username"]).To(Equal("employee"))
			Expect(updated["role"]).To(Equal(3))
		})

		It("fails with not-found when updating a missing user", func() {
			result := execute(`mutation { updateUser(id: "missing", email: "x@x.com") { id } }`, adminToken)
			Expect(errExtensions(result)["kind"]).To(Equal("NOT_FOUND"))
		})

		It("fails with not-found when deleting a missing user", func() {
			result := execute(`mutation { deleteUser(id: "missing") }`, adminToken)
			Expect(errExtensions(result)["kind"]).To(Equal("NOT_FOUND"))
		})
	})

	Describe("employee mutations", func() {
		const createQuery = `mutation { createEmployee(name: "A", email: "a@x.com", jobTitle: "Eng", department: "R&D") { id name email } }`

		It("creates an employee once and rejects the duplicate email", func() {
			first := execute(createQuery, adminToken)
			Expect(first.Errors).To(BeEmpty())

			second := execute(createQuery, adminToken)
			ext := errExtensions(second)
			Expect(ext["kind"]).To(Equal("CONFLICT"))
			Expect(ext["code"]).To(Equal("EMPLOYEE_EMAIL_TAKEN"))

			count, err := empRepo.Count(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("fails with a conflict when mutating a missing employee", func() {
			update := execute(`mutation { updateEmployee(id: "missing", name: "B") { id } }`, adminToken)
			Expect(errExtensions(update)["code"]).To(Equal("EMPLOYEE_MISSING"))

			del := execute(`mutation { deleteEmployee(id: "missing") }`, adminToken)
			Expect(errExtensions(del)["code"]).To(Equal("EMPLOYEE_MISSING"))
		})

		It("deletes an existing employee", func() {
			created := execute(createQuery, adminToken)
			Expect(created.Errors).To(BeEmpty())
			id := created.Data.(map[string]interface{})["createEmployee"].(map[string]interface{})["id"].(string)

			result := execute(`mutation { deleteEmployee(id: "`+id+`") }`, adminToken)
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Data.(map[string]interface{})["deleteEmployee"]).To(Equal(true))

			count, err := empRepo.Count(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("queries", func() {
		It("fails with not-found for a missing employee id", func() {
			result := execute(`{ employee(id: "missing") { id } }`, adminToken)
			Expect(errExtensions(result)["kind"]).To(Equal("NOT_FOUND"))
		})
	})
})

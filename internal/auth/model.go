package auth

// Roles. Chefs manage records; admins may also delete them.
const (
	RoleChef  = "CHEF"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}
